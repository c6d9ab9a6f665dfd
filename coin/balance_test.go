package coin

import (
	"strings"
	"testing"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest/assert"
	amino "github.com/tendermint/go-amino"
)

func TestBalanceValidate(t *testing.T) {
	token := htlc.Address(strings.Repeat("t", htlc.AddressLength))

	cases := map[string]struct {
		balance Balance
		wantErr *errors.Error
	}{
		"native": {
			balance: NativeBalance{Coins: Coins{NewCoin(5, "ujuno"), NewCoin(1, "uatom")}},
		},
		"native without coins": {
			balance: NativeBalance{},
			wantErr: errors.ErrEmpty,
		},
		"native with zero coin": {
			balance: NativeBalance{Coins: Coins{NewCoin(0, "ujuno")}},
			wantErr: errors.ErrAmount,
		},
		"native with duplicated denomination": {
			balance: NativeBalance{Coins: Coins{NewCoin(1, "ujuno"), NewCoin(1, "ujuno")}},
			wantErr: errors.ErrDuplicate,
		},
		"token": {
			balance: TokenBalance{Address: token, Amount: "100"},
		},
		"token without address": {
			balance: TokenBalance{Amount: "100"},
			wantErr: errors.ErrEmpty,
		},
		"token with zero amount": {
			balance: TokenBalance{Address: token, Amount: "0"},
			wantErr: errors.ErrAmount,
		},
		"token with overflowing amount": {
			balance: TokenBalance{Address: token, Amount: maxAmount + "0"},
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.balance.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %s error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestBalanceIsEmpty(t *testing.T) {
	assert.Equal(t, true, NativeBalance{}.IsEmpty())
	assert.Equal(t, true, NativeBalance{Coins: Coins{NewCoin(0, "ujuno")}}.IsEmpty())
	assert.Equal(t, false, NativeBalance{Coins: Coins{NewCoin(1, "ujuno")}}.IsEmpty())
	assert.Equal(t, true, TokenBalance{}.IsEmpty())
	assert.Equal(t, false, TokenBalance{Amount: "3"}.IsEmpty())
}

func TestBalanceAmino(t *testing.T) {
	cdc := amino.NewCodec()
	htlc.RegisterAmino(cdc)
	RegisterAmino(cdc)

	type holder struct {
		Balance Balance `json:"balance"`
	}

	balances := map[string]Balance{
		"native": NativeBalance{Coins: Coins{NewCoin(5, "ujuno")}},
		"token": TokenBalance{
			Address: htlc.Address(strings.Repeat("t", htlc.AddressLength)),
			Amount:  maxAmount,
		},
	}
	for name, b := range balances {
		t.Run(name, func(t *testing.T) {
			raw, err := cdc.MarshalBinaryBare(holder{Balance: b})
			assert.Nil(t, err)
			var got holder
			assert.Nil(t, cdc.UnmarshalBinaryBare(raw, &got))
			assert.Equal(t, b, got.Balance)

			js, err := cdc.MarshalJSON(holder{Balance: b})
			assert.Nil(t, err)
			var fromJSON holder
			assert.Nil(t, cdc.UnmarshalJSON(js, &fromJSON))
			assert.Equal(t, b, fromJSON.Balance)
		})
	}
}
