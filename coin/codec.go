package coin

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterAmino registers the Balance implementations with the codec so
// that the balance variant is preserved when serialized.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*Balance)(nil), nil)
	cdc.RegisterConcrete(NativeBalance{}, "htlc/NativeBalance", nil)
	cdc.RegisterConcrete(TokenBalance{}, "htlc/TokenBalance", nil)
}
