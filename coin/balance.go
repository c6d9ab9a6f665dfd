package coin

import (
	"fmt"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// Balance is the value locked by a swap. It is either a set of native coins
// or an amount of a single token contract. Implementations are limited to
// NativeBalance and TokenBalance.
type Balance interface {
	Validate() error

	// IsEmpty returns true if the balance carries no value.
	IsEmpty() bool

	String() string

	isBalance()
}

var (
	_ Balance = NativeBalance{}
	_ Balance = TokenBalance{}
)

// NativeBalance holds coins of the host chain.
type NativeBalance struct {
	Coins Coins `json:"coins"`
}

// Validate requires at least one coin. Each coin must be positive and
// a denomination cannot be used twice.
func (b NativeBalance) Validate() error {
	if len(b.Coins) == 0 {
		return errors.Wrap(errors.ErrEmpty, "native balance")
	}
	if err := b.Coins.Validate(); err != nil {
		return errors.Wrap(err, "native balance")
	}
	return nil
}

func (b NativeBalance) IsEmpty() bool {
	for _, c := range b.Coins {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

func (b NativeBalance) String() string {
	return fmt.Sprintf("native: %s", b.Coins)
}

func (NativeBalance) isBalance() {}

// TokenBalance holds an amount of a fungible token, identified by the address
// of its contract.
type TokenBalance struct {
	Address htlc.Address `json:"address"`
	Amount  Amount       `json:"amount"`
}

func (b TokenBalance) Validate() error {
	if err := b.Address.Validate(); err != nil {
		return errors.Wrap(err, "token address")
	}
	if err := b.Amount.Validate(); err != nil {
		return errors.Wrap(err, "token amount")
	}
	if b.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero token amount")
	}
	return nil
}

func (b TokenBalance) IsEmpty() bool {
	return b.Amount == "" || b.Amount.IsZero()
}

func (b TokenBalance) String() string {
	return fmt.Sprintf("token %s: %s", b.Address, b.Amount)
}

func (TokenBalance) isBalance() {}
