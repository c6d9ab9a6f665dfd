package htlctest

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/htlc"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// htlc.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) htlc.Address {
	t.Helper()

	addr, err := htlc.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceAddress returns a valid address that is unique for given number.
func SequenceAddress(n uint64) htlc.Address {
	addr := make(htlc.Address, htlc.AddressLength)
	copy(addr, "htlctest")
	binary.BigEndian.PutUint64(addr[htlc.AddressLength-8:], n)
	return addr
}
