package htlc

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterAmino registers all Expiration implementations with the given
// codec, so that values stored behind the interface keep their concrete
// type through binary and JSON encoding.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*Expiration)(nil), nil)
	cdc.RegisterConcrete(AtHeight{}, "htlc/AtHeight", nil)
	cdc.RegisterConcrete(AtTime{}, "htlc/AtTime", nil)
	cdc.RegisterConcrete(Never{}, "htlc/Never", nil)
}
