package aswap

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/coin"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

// HashLength is the size of the commitment, a sha256 digest.
const HashLength = 32

// AtomicSwap is a balance locked until either the preimage of the hash is
// revealed or the swap expires.
type AtomicSwap struct {
	// Hash is the sha256 hash of the preimage.
	Hash []byte `json:"hash"`
	// Recipient can claim the balance by revealing the preimage before the
	// swap expires.
	Recipient htlc.Address `json:"recipient"`
	// Source can refund the balance once the swap expired.
	Source  htlc.Address    `json:"source"`
	Expires htlc.Expiration `json:"expires"`
	// Balance is either in native coins or in a token.
	Balance coin.Balance `json:"balance"`
}

var _ orm.Model = (*AtomicSwap)(nil)

// Validate ensures the swap is complete.
func (s *AtomicSwap) Validate() error {
	if len(s.Hash) != HashLength {
		return errors.Wrapf(errors.ErrInput, "hash has to be exactly %d bytes", HashLength)
	}
	if err := s.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if s.Expires == nil {
		return errors.Wrap(errors.ErrEmpty, "expires")
	}
	if err := s.Expires.Validate(); err != nil {
		return errors.Wrap(err, "expires")
	}
	if s.Balance == nil {
		return errors.Wrap(errors.ErrEmpty, "balance")
	}
	if err := s.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	return nil
}

// IsExpired returns true if the swap deadline is reached at given block.
// Expiration is inclusive. A swap without a deadline never expires.
func (s *AtomicSwap) IsExpired(block htlc.BlockInfo) bool {
	if s.Expires == nil {
		return false
	}
	return s.Expires.IsExpired(block)
}

// Marshal serializes the swap using the package codec.
func (s *AtomicSwap) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	return raw, nil
}

// Unmarshal loads the swap from its serialized form.
func (s *AtomicSwap) Unmarshal(raw []byte) error {
	var swap AtomicSwap
	if err := cdc.UnmarshalBinaryBare(raw, &swap); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	*s = swap
	return nil
}
