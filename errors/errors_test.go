package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	std := stdlib.New("stdlib")

	cases := map[string]struct {
		root *Error
		err  error
		want bool
	}{
		"itself":                 {root: ErrNotFound, err: ErrNotFound, want: true},
		"other root":             {root: ErrNotFound, err: ErrModel},
		"wrapped here":           {root: ErrNotFound, err: Wrap(ErrNotFound, "escrow"), want: true},
		"wrapped by pkg/errors":  {root: ErrNotFound, err: errors.Wrap(ErrNotFound, "escrow"), want: true},
		"other root wrapped":     {root: ErrNotFound, err: Wrap(ErrOverflow, "amount")},
		"stdlib":                 {root: ErrNotFound, err: std},
		"wrapped stdlib":         {root: ErrNotFound, err: Wrap(std, "read")},
		"nil root and nil":       {root: nil, err: nil, want: true},
		"nil root and typed nil": {root: nil, err: (*Error)(nil), want: true},
		"nil root and error":     {root: nil, err: ErrNotFound},
		"nil error":              {root: ErrNotFound, err: nil},
		"first of many":          {root: ErrNotFound, err: Append(ErrNotFound, ErrState), want: true},
		"last of many":           {root: ErrNotFound, err: Append(ErrState, ErrNotFound), want: true},
		"deep in many": {
			root: ErrNotFound,
			err:  Wrap(Append(ErrState, Wrap(ErrNotFound, "escrow")), "claim"),
			want: true,
		},
		"none of many": {root: ErrNotFound, err: Append(ErrState, ErrAmount)},
		"inside a field": {
			root: ErrAmount,
			err:  Field("Amount", ErrAmount, "must be positive"),
			want: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.root.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("wrapping nil: %v", err)
	}
	if err := Wrap((*Error)(nil), "nothing"); err != nil {
		t.Fatalf("wrapping a typed nil: %v", err)
	}

	err := Wrapf(ErrNotFound, "escrow %d", 7)
	if got := err.Error(); got != "escrow 7: not found" {
		t.Fatalf("unexpected message %q", got)
	}
	if errors.Cause(err) != ErrNotFound {
		t.Fatalf("unexpected cause %v", errors.Cause(err))
	}
	if got := ErrState.Newf("height %d", 3).Error(); got != "height 3: invalid state" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRegister(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("a taken code was registered twice")
		}
	}()
	Register(ErrNotFound.ABCICode(), "again")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected %v", err)
	}
}

func TestFormat(t *testing.T) {
	err := Wrap(ErrNotFound, "escrow")

	if got := fmt.Sprintf("%s", err); got != "escrow: not found" {
		t.Fatalf("%%s: %q", got)
	}
	short := fmt.Sprintf("%v", err)
	if !strings.HasPrefix(short, "escrow: not found [") || !strings.Contains(short, "errors_test.go") {
		t.Fatalf("%%v: %q", short)
	}
	full := fmt.Sprintf("%+v", err)
	if !strings.HasSuffix(full, "escrow: not found") || !strings.Contains(full, "TestFormat") {
		t.Fatalf("%%+v: %q", full)
	}
}
