package aswap

import (
	"encoding/hex"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/coin"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 10
	// MaxLimit is the biggest page size that can be requested.
	MaxLimit = 30
)

// ListResponse is a page of swap identifiers.
type ListResponse struct {
	Swaps []string `json:"swaps"`
}

// List returns a page of active swap identifiers. An empty startAfter lists
// from the first swap, otherwise the listing starts right after given id.
// A nil limit means DefaultLimit and any limit is capped at MaxLimit.
func List(db htlc.ReadOnlyKVStore, startAfter string, limit *int) (*ListResponse, error) {
	n, err := pageLimit(limit)
	if err != nil {
		return nil, err
	}
	ids, err := NewBucket().AllSwapIDs(db, startBound(startAfter), n)
	if err != nil {
		return nil, errors.Wrap(err, "list swaps")
	}
	return &ListResponse{Swaps: ids}, nil
}

// DetailsResponse presents a single swap. The hash is hex encoded.
type DetailsResponse struct {
	ID        string          `json:"id"`
	Hash      string          `json:"hash"`
	Recipient htlc.Address    `json:"recipient"`
	Source    htlc.Address    `json:"source"`
	Expires   htlc.Expiration `json:"expires"`
	Balance   coin.Balance    `json:"balance"`
}

// Details returns the swap stored under given id. It returns ErrNotFound if
// there is no such swap.
func Details(db htlc.ReadOnlyKVStore, id string) (*DetailsResponse, error) {
	swap, err := NewBucket().Get(db, id)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "swap %q", id)
	}
	return &DetailsResponse{
		ID:        id,
		Hash:      hex.EncodeToString(swap.Hash),
		Recipient: swap.Recipient,
		Source:    swap.Source,
		Expires:   swap.Expires,
		Balance:   swap.Balance,
	}, nil
}

// ListExpired returns up to limit identifiers of swaps that are expired at
// given block, starting right after startAfter. Those swaps can only be
// refunded. The store is read in pages of MaxLimit swaps until enough
// expired swaps are found or there are no more swaps.
func ListExpired(db htlc.ReadOnlyKVStore, block htlc.BlockInfo, startAfter string, limit *int) (*ListResponse, error) {
	n, err := pageLimit(limit)
	if err != nil {
		return nil, err
	}

	b := NewBucket()
	expired := make([]string, 0, n)
	start := startBound(startAfter)
	for len(expired) < n {
		ids, err := b.AllSwapIDs(db, start, MaxLimit)
		if err != nil {
			return nil, errors.Wrap(err, "list swaps")
		}
		for _, id := range ids {
			swap, err := b.Get(db, id)
			if err != nil {
				return nil, errors.Wrapf(err, "swap %q", id)
			}
			if swap != nil && swap.IsExpired(block) {
				expired = append(expired, id)
				if len(expired) == n {
					break
				}
			}
		}
		if len(ids) < MaxLimit {
			break
		}
		start = orm.Exclusive([]byte(ids[len(ids)-1]))
	}
	return &ListResponse{Swaps: expired}, nil
}

func pageLimit(limit *int) (int, error) {
	if limit == nil {
		return DefaultLimit, nil
	}
	switch n := *limit; {
	case n < 0:
		return 0, errors.Wrapf(errors.ErrInput, "negative limit %d", n)
	case n > MaxLimit:
		return MaxLimit, nil
	default:
		return n, nil
	}
}

func startBound(startAfter string) *orm.Bound {
	if startAfter == "" {
		return nil
	}
	return orm.Exclusive([]byte(startAfter))
}
