package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/weavetest/assert"
)

// counter is a minimal model used across the orm tests.
type counter struct {
	Count int64
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(c.Count))
	return raw, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrInput, "want 8 bytes, got %d", len(raw))
	}
	c.Count = int64(binary.BigEndian.Uint64(raw))
	return nil
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

// label is a second model type, incompatible with counter.
type label struct {
	Text string
}

var _ Model = (*label)(nil)

func (l *label) Marshal() ([]byte, error)   { return []byte(l.Text), nil }
func (l *label) Unmarshal(raw []byte) error { l.Text = string(raw); return nil }
func (l *label) Validate() error {
	if l.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"empty": {},
		"simple": {
			prefix:    []byte("ab"),
			wantStart: []byte("ab"),
			wantEnd:   []byte("ac"),
		},
		"carry": {
			prefix:    []byte{0x01, 0xFF},
			wantStart: []byte{0x01, 0xFF},
			wantEnd:   []byte{0x02},
		},
		"all ff": {
			prefix:    []byte{0xFF, 0xFF},
			wantStart: []byte{0xFF, 0xFF},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}
