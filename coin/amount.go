package coin

import (
	"regexp"

	"github.com/holiman/uint256"
	"github.com/iov-one/htlc/errors"
)

// maxAmountBits limits amounts to an unsigned 128 bit integer.
const maxAmountBits = 128

var isAmount = regexp.MustCompile(`^(0|[1-9][0-9]*)$`).MatchString

// Amount is an unsigned integer of up to 128 bits, represented as a base 10
// string. A string representation keeps the value readable in JSON and
// independent of the native integer size.
type Amount string

// NewAmount returns an amount of the given value.
func NewAmount(v uint64) Amount {
	return Amount(uint256.NewInt(v).Dec())
}

// ParseAmount returns the amount represented by given string or an error if
// the representation is not valid.
func ParseAmount(raw string) (Amount, error) {
	a := Amount(raw)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Validate returns an error if the amount is not a canonical base 10
// representation or does not fit in 128 bits.
func (a Amount) Validate() error {
	if a == "" {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if !isAmount(string(a)) {
		return errors.Wrapf(errors.ErrAmount, "malformed amount %q", string(a))
	}
	n, err := uint256.FromDecimal(string(a))
	if err != nil {
		return errors.Wrapf(errors.ErrOverflow, "amount %q", string(a))
	}
	if n.BitLen() > maxAmountBits {
		return errors.Wrapf(errors.ErrOverflow, "amount %q exceeds %d bits", string(a), maxAmountBits)
	}
	return nil
}

// IsZero returns true if the amount is zero. An invalid amount is never zero.
func (a Amount) IsZero() bool {
	return a == "0"
}

// Add returns the sum of both amounts.
func (a Amount) Add(b Amount) (Amount, error) {
	x, err := a.uint()
	if err != nil {
		return "", err
	}
	y, err := b.uint()
	if err != nil {
		return "", err
	}
	sum, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow || sum.BitLen() > maxAmountBits {
		return "", errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return Amount(sum.Dec()), nil
}

// Compare returns -1 if a is less than b, 0 if both are equal and 1 if a is
// greater than b. Both amounts must be valid.
func (a Amount) Compare(b Amount) int {
	x, errx := a.uint()
	y, erry := b.uint()
	if errx != nil || erry != nil {
		panic("comparing invalid amounts")
	}
	return x.Cmp(y)
}

func (a Amount) uint() (*uint256.Int, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	n, err := uint256.FromDecimal(string(a))
	if err != nil {
		return nil, errors.Wrap(errors.ErrAmount, err.Error())
	}
	return n, nil
}

func (a Amount) String() string {
	return string(a)
}
