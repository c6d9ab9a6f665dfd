package htlctest

import (
	"time"

	"github.com/iov-one/htlc"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ChainID is used by all block info created by this package.
const ChainID = "htlctest-chain"

// Tester is implemented by both *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatalf(string, ...interface{})
}

// BlockAt returns block information for given height and time.
func BlockAt(t Tester, height int64, now time.Time) htlc.BlockInfo {
	t.Helper()
	block, err := htlc.NewBlockInfo(abci.Header{Height: height, Time: now}, ChainID, nil)
	if err != nil {
		t.Fatalf("cannot create block info: %s", err)
	}
	return block
}

// BlockAtHeight returns block information for given height. Block time is
// set to a fixed point in time so that results are reproducible.
func BlockAtHeight(t Tester, height int64) htlc.BlockInfo {
	t.Helper()
	return BlockAt(t, height, Epoch)
}

// Epoch is the block time used when none is given.
var Epoch = time.Date(2019, time.March, 15, 14, 56, 0, 0, time.UTC)
