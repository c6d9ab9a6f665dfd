package aswap

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

// BucketName is the namespace of all swaps in the store.
const BucketName = "atomic_swap"

// Bucket stores swaps by their identifier.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns a bucket for managing swaps.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName),
	}
}

// Get returns the swap stored under given id, or nil if there is none.
func (b Bucket) Get(db htlc.ReadOnlyKVStore, id string) (*AtomicSwap, error) {
	var swap AtomicSwap
	switch err := b.Load(db, []byte(id), &swap); {
	case err == nil:
		return &swap, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Save stores the swap under given id. An existing swap is overwritten,
// callers creating a swap must check that the id is not taken.
func (b Bucket) Save(db htlc.KVStore, id string, swap *AtomicSwap) error {
	if swap == nil {
		return errors.Wrap(errors.ErrEmpty, "swap")
	}
	if err := b.Bucket.Save(db, []byte(id), swap); err != nil {
		return errors.Wrapf(err, "swap %q", id)
	}
	return nil
}

// Delete removes the swap stored under given id. Removing a missing swap is
// not an error.
func (b Bucket) Delete(db htlc.KVStore, id string) error {
	return b.Bucket.Delete(db, []byte(id))
}

// Has returns true if a swap is stored under given id.
func (b Bucket) Has(db htlc.ReadOnlyKVStore, id string) (bool, error) {
	return b.Bucket.Has(db, []byte(id))
}

// AllSwapIDs returns up to limit identifiers of stored swaps in ascending
// order. A nil start lists from the first swap. Use orm.Exclusive with the
// last identifier of the previous page to continue listing.
func (b Bucket) AllSwapIDs(db htlc.ReadOnlyKVStore, start *orm.Bound, limit int) ([]string, error) {
	keys, err := b.Keys(db, start, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = string(k)
	}
	return ids, nil
}
