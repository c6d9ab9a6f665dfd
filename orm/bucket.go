/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* Keys are ordered, so a bucket can be listed in pages.
* Easy queries for one and iteration.
*/
package orm

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// maxPrealloc caps the memory allocated upfront for a key listing.
const maxPrealloc = 64

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString
)

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// Bucket is a prefixed subspace of the DB. All keys of the bucket are
// stored under the bucket name followed by a colon.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data. It panics if the name is not
// a valid bucket name.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the namespace of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Has returns true if an entity is stored under given key.
func (b Bucket) Has(db htlc.ReadOnlyKVStore, key []byte) (bool, error) {
	if len(key) == 0 {
		return false, errors.Wrap(errors.ErrEmpty, "key")
	}
	return db.Has(b.DBKey(key))
}

// Load reads the entity stored under given key into dest. It returns
// ErrNotFound if the key is not present.
func (b Bucket) Load(db htlc.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %q", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "%s %q", b.name, key)
	}
	return nil
}

// Save validates and writes given entity. An existing entity with the same
// key is overwritten.
func (b Bucket) Save(db htlc.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize")
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete will remove the value at a key. Deleting a missing key is a noop.
func (b Bucket) Delete(db htlc.KVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return db.Delete(b.DBKey(key))
}

// Keys returns up to limit keys of this bucket in ascending byte order,
// starting at the given bound. A nil bound starts at the beginning of the
// bucket. Returned keys do not contain the bucket prefix.
//
// No more than limit keys are read from the store. A zero limit returns an
// empty result without reading the store at all. Any storage error aborts
// the listing, a partial result is never returned.
func (b Bucket) Keys(db htlc.ReadOnlyKVStore, start *Bound, limit int) ([][]byte, error) {
	if limit < 0 {
		return nil, errors.Wrapf(errors.ErrInput, "negative limit %d", limit)
	}
	if limit == 0 {
		return [][]byte{}, nil
	}
	keys := make([][]byte, 0, minInt(limit, maxPrealloc))

	from := b.prefix
	if start != nil {
		from = b.DBKey(start.key)
		if start.exclusive {
			// The first key sorting after the bound key.
			from = append(from, 0)
		}
	}

	it, err := db.Iterator(from, prefixEnd(b.prefix))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	defer it.Release()

	for len(keys) < limit {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "cannot read key")
		}
		if !bytes.HasPrefix(key, b.prefix) {
			return nil, errors.Wrapf(errors.ErrDatabase, "key %q outside of %s bucket", key, b.name)
		}
		keys = append(keys, append([]byte{}, key[len(b.prefix):]...))
	}
	return keys, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
