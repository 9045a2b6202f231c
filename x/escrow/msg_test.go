package escrow

import (
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/weavetest/assert"
)

func TestMsgValidate(t *testing.T) {
	dep, rcpt, esc := filled(1), filled(2), filled(9)

	cases := map[string]struct {
		msg        lockbox.Msg
		wantFields map[string]*errors.Error
	}{
		"valid initialize": {
			msg: &InitializeMsg{Depositor: dep, Recipient: rcpt, Amount: 10, EscrowID: 1},
			wantFields: map[string]*errors.Error{
				"Depositor": nil,
				"Recipient": nil,
				"Amount":    nil,
				"Escrow":    nil,
			},
		},
		"initialize with zero amount": {
			msg: &InitializeMsg{Depositor: dep, Recipient: rcpt},
			wantFields: map[string]*errors.Error{
				"Amount": ErrInvalidAmount,
			},
		},
		"initialize with malformed escrow address": {
			msg: &InitializeMsg{Depositor: dep, Recipient: rcpt, Amount: 1, Escrow: lockbox.Address{1, 2}},
			wantFields: map[string]*errors.Error{
				"Escrow": errors.ErrInput,
			},
		},
		"initialize without parties": {
			msg: &InitializeMsg{Amount: 1},
			wantFields: map[string]*errors.Error{
				"Depositor": errors.ErrEmpty,
				"Recipient": errors.ErrEmpty,
			},
		},
		"valid claim": {
			msg: &ClaimMsg{Recipient: rcpt, Depositor: dep, Escrow: esc},
			wantFields: map[string]*errors.Error{
				"Recipient": nil,
				"Depositor": nil,
				"Escrow":    nil,
			},
		},
		"claim without escrow": {
			msg: &ClaimMsg{Recipient: rcpt, Depositor: dep},
			wantFields: map[string]*errors.Error{
				"Escrow": errors.ErrEmpty,
			},
		},
		"valid cancel": {
			msg: &CancelMsg{Depositor: dep, Escrow: esc},
			wantFields: map[string]*errors.Error{
				"Depositor": nil,
				"Escrow":    nil,
			},
		},
		"cancel without depositor": {
			msg: &CancelMsg{Escrow: esc},
			wantFields: map[string]*errors.Error{
				"Depositor": errors.ErrEmpty,
				"Escrow":    nil,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantFields {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "escrow/initialize", InitializeMsg{}.Path())
	assert.Equal(t, "escrow/claim", ClaimMsg{}.Path())
	assert.Equal(t, "escrow/cancel", CancelMsg{}.Path())
}

func TestMsgSerialization(t *testing.T) {
	dep, rcpt, esc := filled(1), filled(2), filled(9)

	cases := map[string]struct {
		msg  interface{ Marshal() ([]byte, error) }
		into interface{ Unmarshal([]byte) error }
	}{
		"initialize": {
			msg:  &InitializeMsg{Depositor: dep, Recipient: rcpt, Amount: 10, EscrowID: 1 << 60, Escrow: esc},
			into: &InitializeMsg{},
		},
		"initialize without escrow address": {
			msg:  &InitializeMsg{Depositor: dep, Recipient: rcpt, Amount: 1},
			into: &InitializeMsg{},
		},
		"claim": {
			msg:  &ClaimMsg{Recipient: rcpt, Depositor: dep, Escrow: esc},
			into: &ClaimMsg{},
		},
		"cancel": {
			msg:  &CancelMsg{Depositor: dep, Escrow: esc},
			into: &CancelMsg{Depositor: filled(7)},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := tc.msg.Marshal()
			assert.Nil(t, err)
			assert.Nil(t, tc.into.Unmarshal(raw))
			assert.Equal(t, tc.msg, tc.into)
		})
	}
}

func TestInitializeMsgWireFormat(t *testing.T) {
	msg := &InitializeMsg{Depositor: filled(1), Recipient: filled(2), Amount: 150}
	raw, err := msg.Marshal()
	assert.Nil(t, err)

	want := append([]byte{0x0a, 32}, filled(1)...)
	want = append(want, 0x12, 32)
	want = append(want, filled(2)...)
	want = append(want, 0x18, 0x96, 0x01)
	assert.Equal(t, want, raw)
}
