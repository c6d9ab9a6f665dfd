package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil has no code":          {err: nil, want: 0},
		"root error":               {err: ErrNotFound, want: 3},
		"wrapped root error":       {err: Wrap(Wrap(ErrDatabase, "read"), "load"), want: 17},
		"stdlib error is internal": {err: stdlib.New("boom"), want: 1},
		"wrapped stdlib error":     {err: Wrap(stdlib.New("boom"), "boom"), want: 1},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("at the disco")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
	if !strings.Contains(err.Error(), "at the disco") {
		t.Fatalf("panic message lost: %q", err)
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering a used code must panic")
		}
	}()
	Register(ErrNotFound.Code(), "again")
}

func TestFormat(t *testing.T) {
	err := Wrap(ErrNotFound, "swap")
	if got := fmt.Sprintf("%s", err); got != "swap: not found" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := fmt.Sprintf("%v", err); !strings.HasPrefix(got, "swap: not found [") {
		t.Fatalf("creation frame missing: %q", got)
	}
}
