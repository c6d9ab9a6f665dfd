package coin

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/iov-one/htlc/errors"
)

// IsDenom is a regexp to validate the denomination of a native coin.
var IsDenom = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`).MatchString

// Coin is an amount of a single native denomination.
type Coin struct {
	Denom  string `json:"denom"`
	Amount Amount `json:"amount"`
}

// NewCoin returns a coin of given denomination.
func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: NewAmount(amount)}
}

// Validate ensures that the denomination and the amount are well formed.
// Zero value coins are valid.
func (c Coin) Validate() error {
	if !IsDenom(c.Denom) {
		return errors.Wrapf(errors.ErrInput, "invalid denomination %q", c.Denom)
	}
	if err := c.Amount.Validate(); err != nil {
		return errors.Wrapf(err, "%s amount", c.Denom)
	}
	return nil
}

// IsZero returns true if this coin carries no value.
func (c Coin) IsZero() bool {
	return c.Amount.IsZero()
}

// Equals returns true if both coins have the same denomination and value.
func (c Coin) Equals(o Coin) bool {
	return c.Denom == o.Denom && c.Amount == o.Amount
}

func (c Coin) String() string {
	return fmt.Sprintf("%s%s", c.Amount, c.Denom)
}

var humanCoinFormat = regexp.MustCompile(`^([0-9]+)\s*([a-zA-Z][a-zA-Z0-9/:._-]{2,127})$`)

// ParseHumanFormat parses a coin written as amount followed by the
// denomination, for example "100ujuno".
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormat.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := ParseAmount(m[1])
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: m[2], Amount: amount}, nil
}

// Coins is a set of native coins.
type Coins []Coin

// Validate requires every coin to be valid and non zero, with no
// denomination repeated.
func (cs Coins) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "zero %s coin", c.Denom)
		}
		if _, ok := seen[c.Denom]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "denomination %s", c.Denom)
		}
		seen[c.Denom] = struct{}{}
	}
	return nil
}

// Normalize returns a new set sorted by denomination, with coins of the
// same denomination merged and zero coins removed.
func (cs Coins) Normalize() (Coins, error) {
	byDenom := make(map[string]Amount, len(cs))
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		prev, ok := byDenom[c.Denom]
		if !ok {
			byDenom[c.Denom] = c.Amount
			continue
		}
		sum, err := prev.Add(c.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "merge %s", c.Denom)
		}
		byDenom[c.Denom] = sum
	}

	out := make(Coins, 0, len(byDenom))
	for denom, amount := range byDenom {
		if amount.IsZero() {
			continue
		}
		out = append(out, Coin{Denom: denom, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out, nil
}

// Equals returns true if both sets contain the same coins in the same order.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share memory with the original.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	out := make(Coins, len(cs))
	copy(out, cs)
	return out
}

func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(none)"
	}
	s := cs[0].String()
	for _, c := range cs[1:] {
		s += ", " + c.String()
	}
	return s
}
