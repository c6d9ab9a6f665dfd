package aswap

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/coin"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
	cdc.Seal()
}

// RegisterAmino registers every type that is required to serialize a swap.
func RegisterAmino(c *amino.Codec) {
	htlc.RegisterAmino(c)
	coin.RegisterAmino(c)
}

// Codec returns the sealed codec used to serialize swaps, both to the store
// and to JSON.
func Codec() *amino.Codec {
	return cdc
}
