package htlc

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/htlc/crypto/bech32"
	"github.com/iov-one/htlc/errors"
)

const (
	// AddressLength is the length of all addresses
	AddressLength = 20
)

// Address identifies an account on the host chain.
//
// It will be of size AddressLength
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy of this address that does not share memory.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(a))
	return json.Marshal(s)
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes the text representation of an address.
//
// Without a prefix the hex encoding is expected. Prefix the value with "hex:"
// or "bech32:" to choose the format explicitly. An empty value is a nil
// address.
func ParseAddress(enc string) (Address, error) {
	// If the encoded string starts with a prefix, cut it off and use
	// specified decoding method instead of default one.
	chunks := strings.SplitN(enc, ":", 2)
	format := chunks[0]
	if len(chunks) == 1 {
		format = "hex"
	} else {
		enc = chunks[1]
	}

	// No value zero the address.
	if len(enc) == 0 {
		return nil, nil
	}

	switch format {
	case "hex":
		val, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr := Address(val)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return addr, nil
	case "bech32":
		_, payload, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrap(err, "deserialize bech32")
		}
		addr := Address(payload)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return addr, nil
	default:
		return nil, errors.ErrType.Newf("unknown format %q", chunks[0])
	}
}

// Bech32 returns the bech32 representation of this address using given
// human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	return bech32.Encode(hrp, a)
}

// String returns a human readable string.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.ErrEmpty.New("address")
	}
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address: %v", a)
	}
	return nil
}
