package lockbox

import (
	"encoding/json"
	"time"

	"github.com/iov-one/lockbox/errors"
)

// UnixTime is a moment in seconds since the epoch. Records store their
// creation time this way.
type UnixTime int64

func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}

// Validate rejects moments before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrapf(errors.ErrState, "%d is before the epoch", int64(t))
	}
	return nil
}

// UnmarshalJSON accepts seconds or, as written by hand in a genesis
// file, an RFC 3339 string.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		var at time.Time
		if err := json.Unmarshal(raw, &at); err != nil {
			return errors.Wrapf(errors.ErrInput, "time %s", raw)
		}
		secs = at.Unix()
	}
	if err := UnixTime(secs).Validate(); err != nil {
		return err
	}
	*t = UnixTime(secs)
	return nil
}
