package aswap_test

import (
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/coin"
	"github.com/iov-one/htlc/htlctest"
	"github.com/iov-one/htlc/x/aswap"
)

// newSwap returns a valid swap locking 100ujuno that expires at given
// height.
func newSwap(t testing.TB, preimage string, height int64) *aswap.AtomicSwap {
	t.Helper()
	return &aswap.AtomicSwap{
		Hash:      htlctest.Hash(preimage),
		Recipient: htlctest.SequenceAddress(1),
		Source:    htlctest.SequenceAddress(2),
		Expires:   htlc.AtHeight{Height: height},
		Balance: coin.NativeBalance{
			Coins: coin.Coins{coin.NewCoin(100, "ujuno")},
		},
	}
}

// saveSwaps stores a copy of the given swap under each id.
func saveSwaps(t testing.TB, db htlc.KVStore, swap *aswap.AtomicSwap, ids ...string) {
	t.Helper()
	b := aswap.NewBucket()
	for _, id := range ids {
		if err := b.Save(db, id, swap); err != nil {
			t.Fatalf("cannot save swap %q: %s", id, err)
		}
	}
}
