package htlc

import (
	"fmt"

	"github.com/iov-one/htlc/errors"
)

// Expiration declares the deadline of an entity. The deadline is expressed
// in the units of the host chain clock, either as a block height or as a
// block time. Implementations are limited to AtHeight, AtTime and Never.
type Expiration interface {
	// IsExpired returns true if the deadline is reached for the given
	// block. Expiration is inclusive: a deadline equal to the current
	// height (or time) is expired. Calling this method never modifies the
	// expiration.
	IsExpired(BlockInfo) bool

	// Validate returns an error if the deadline is not usable.
	Validate() error

	String() string

	isExpiration()
}

var (
	_ Expiration = AtHeight{}
	_ Expiration = AtTime{}
	_ Expiration = Never{}
)

// AtHeight expires when the block height reaches the given value.
type AtHeight struct {
	Height int64 `json:"height"`
}

func (e AtHeight) IsExpired(block BlockInfo) bool {
	return block.IsHeightReached(e.Height)
}

func (e AtHeight) Validate() error {
	if e.Height <= 0 {
		return errors.Wrapf(errors.ErrInput, "height must be positive, got %d", e.Height)
	}
	return nil
}

func (e AtHeight) String() string {
	return fmt.Sprintf("expiration height: %d", e.Height)
}

func (AtHeight) isExpiration() {}

// AtTime expires when the block time reaches the given value.
type AtTime struct {
	Time UnixTime `json:"time"`
}

func (e AtTime) IsExpired(block BlockInfo) bool {
	return block.IsExpired(e.Time)
}

func (e AtTime) Validate() error {
	if e.Time.IsZero() {
		// Zero time is a valid value that dates to 1970-01-01. We
		// know that this value is in the past and makes no sense. Most
		// likely value was not provided and a zero value remained.
		return errors.Wrap(errors.ErrInput, "time is required")
	}
	if err := e.Time.Validate(); err != nil {
		return errors.Wrap(err, "invalid time value")
	}
	return nil
}

func (e AtTime) String() string {
	return fmt.Sprintf("expiration time: %d", int64(e.Time))
}

func (AtTime) isExpiration() {}

// Never does not expire.
type Never struct{}

func (Never) IsExpired(BlockInfo) bool {
	return false
}

func (Never) Validate() error {
	return nil
}

func (Never) String() string {
	return "expiration: never"
}

func (Never) isExpiration() {}
