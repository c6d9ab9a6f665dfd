package htlc_test

import (
	"testing"
	"time"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	amino "github.com/tendermint/go-amino"
	abci "github.com/tendermint/tendermint/abci/types"
)

func blockAt(t testing.TB, height int64, now time.Time) htlc.BlockInfo {
	t.Helper()
	bi, err := htlc.NewBlockInfo(abci.Header{Height: height, Time: now}, "test-chain", nil)
	if err != nil {
		t.Fatalf("cannot create block info: %s", err)
	}
	return bi
}

func TestExpirationIsExpired(t *testing.T) {
	now := time.Unix(1554370540, 0)
	unow := htlc.AsUnixTime(now)

	cases := map[string]struct {
		exp    htlc.Expiration
		height int64
		want   bool
	}{
		"height before deadline":     {exp: htlc.AtHeight{Height: 100}, height: 99, want: false},
		"height equal to deadline":   {exp: htlc.AtHeight{Height: 100}, height: 100, want: true},
		"height after deadline":      {exp: htlc.AtHeight{Height: 100}, height: 101, want: true},
		"time before deadline":       {exp: htlc.AtTime{Time: unow.Add(time.Second)}, height: 1, want: false},
		"time equal to deadline":     {exp: htlc.AtTime{Time: unow}, height: 1, want: true},
		"time after deadline":        {exp: htlc.AtTime{Time: unow.Add(-time.Second)}, height: 1, want: true},
		"never at the first block":   {exp: htlc.Never{}, height: 1, want: false},
		"never at a very high block": {exp: htlc.Never{}, height: 1 << 60, want: false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			block := blockAt(t, tc.height, now)
			if got := tc.exp.IsExpired(block); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
			// Evaluating must not change the answer.
			if got := tc.exp.IsExpired(block); got != tc.want {
				t.Fatalf("second evaluation returned %v", got)
			}
		})
	}
}

func TestExpirationMonotonic(t *testing.T) {
	exp := htlc.AtHeight{Height: 50}
	expired := false
	for h := int64(1); h < 100; h++ {
		got := exp.IsExpired(blockAt(t, h, time.Now()))
		if expired && !got {
			t.Fatalf("expiration reverted at height %d", h)
		}
		if got != (h >= 50) {
			t.Fatalf("height %d: unexpected result %v", h, got)
		}
		expired = got
	}
}

func TestExpirationValidate(t *testing.T) {
	cases := map[string]struct {
		exp     htlc.Expiration
		wantErr *errors.Error
	}{
		"valid height":    {exp: htlc.AtHeight{Height: 1}},
		"zero height":     {exp: htlc.AtHeight{Height: 0}, wantErr: errors.ErrInput},
		"negative height": {exp: htlc.AtHeight{Height: -4}, wantErr: errors.ErrInput},
		"valid time":      {exp: htlc.AtTime{Time: 1554370540}},
		"zero time":       {exp: htlc.AtTime{}, wantErr: errors.ErrInput},
		"negative time":   {exp: htlc.AtTime{Time: -1}, wantErr: errors.ErrState},
		"never":           {exp: htlc.Never{}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.exp.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestExpirationString(t *testing.T) {
	if got := (htlc.AtHeight{Height: 7}).String(); got != "expiration height: 7" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := (htlc.AtTime{Time: 12}).String(); got != "expiration time: 12" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := (htlc.Never{}).String(); got != "expiration: never" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestExpirationAminoRoundTrip(t *testing.T) {
	cdc := amino.NewCodec()
	htlc.RegisterAmino(cdc)

	type holder struct {
		Expires htlc.Expiration `json:"expires"`
	}

	for _, exp := range []htlc.Expiration{
		htlc.AtHeight{Height: 100},
		htlc.AtTime{Time: 1554370540},
		htlc.Never{},
	} {
		t.Run(exp.String(), func(t *testing.T) {
			raw, err := cdc.MarshalBinaryBare(holder{Expires: exp})
			if err != nil {
				t.Fatalf("cannot marshal: %s", err)
			}
			var got holder
			if err := cdc.UnmarshalBinaryBare(raw, &got); err != nil {
				t.Fatalf("cannot unmarshal: %s", err)
			}
			if got.Expires != exp {
				t.Fatalf("want %#v, got %#v", exp, got.Expires)
			}

			js, err := cdc.MarshalJSON(holder{Expires: exp})
			if err != nil {
				t.Fatalf("cannot marshal json: %s", err)
			}
			var fromJSON holder
			if err := cdc.UnmarshalJSON(js, &fromJSON); err != nil {
				t.Fatalf("cannot unmarshal json %s: %s", js, err)
			}
			if fromJSON.Expires != exp {
				t.Fatalf("want %#v, got %#v", exp, fromJSON.Expires)
			}
		})
	}
}
