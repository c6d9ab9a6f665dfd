package htlctest

import (
	"crypto/sha256"
)

// HashLength is the size of a swap commitment.
const HashLength = sha256.Size

// Preimage returns a deterministic secret for given seed.
func Preimage(seed string) []byte {
	return []byte("preimage:" + seed)
}

// Hash returns the commitment of the secret derived from given seed.
func Hash(seed string) []byte {
	h := sha256.Sum256(Preimage(seed))
	return h[:]
}
