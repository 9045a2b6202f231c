package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declared upfront so that DeepEqual compares the same instances.
	var (
		zeroAmount     = Field("Amount", ErrAmount, "must be positive")
		emptyRecipient = Field("Recipient", ErrEmpty, "missing")
		badDepositor   = Field("Depositor", ErrInput, "wrong length")
		recordErr      = Field("Record", Append(zeroAmount, Append(emptyRecipient, ErrState)), "invalid record")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"nil error": {
			err:   nil,
			field: "Amount",
			want:  nil,
		},
		"plain error has no fields": {
			err:   ErrAmount,
			field: "Amount",
			want:  nil,
		},
		"single field": {
			err:   zeroAmount,
			field: "Amount",
			want:  []error{zeroAmount},
		},
		"other field": {
			err:   zeroAmount,
			field: "Recipient",
			want:  nil,
		},
		"appended": {
			err:   Append(badDepositor, zeroAmount),
			field: "Amount",
			want:  []error{zeroAmount},
		},
		"AppendField skips nil": {
			err:   AppendField(AppendField(nil, "Amount", nil), "Recipient", nil),
			field: "Amount",
			want:  nil,
		},
		"nested in a multi error": {
			err:   recordErr,
			field: "Recipient",
			want:  []error{emptyRecipient},
		},
		"the outer field wins": {
			err:   recordErr,
			field: "Record",
			want:  []error{recordErr},
		},
		"wrapped": {
			err:   Wrap(Wrap(recordErr, "inner"), "outer"),
			field: "Amount",
			want:  []error{zeroAmount},
		},
		"several matches": {
			err:   Append(zeroAmount, badDepositor, Wrap(zeroAmount, "again")),
			field: "Amount",
			want:  []error{zeroAmount, zeroAmount},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if !reflect.DeepEqual(tc.want, got) {
				t.Logf("want: %#v", tc.want)
				t.Logf(" got: %#v", got)
				t.Fatal("unexpected result")
			}
		})
	}
}
