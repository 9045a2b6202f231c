package lockbox

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/lockbox/errors"
)

func TestUnixTimeFromGenesis(t *testing.T) {
	cases := map[string]struct {
		json    string
		want    UnixTime
		wantErr *errors.Error
	}{
		"seconds":             {json: "1700000000", want: 1700000000},
		"epoch":               {json: "0"},
		"rfc3339 utc":         {json: `"2023-11-14T22:13:20Z"`, want: 1700000000},
		"rfc3339 with offset": {json: `"2023-11-15T00:13:20.5+02:00"`, want: 1700000000},
		"negative seconds":    {json: "-60", wantErr: errors.ErrState},
		"before the epoch":    {json: `"1969-12-31T23:00:00Z"`, wantErr: errors.ErrState},
		"not a time":          {json: `"tomorrow"`, wantErr: errors.ErrInput},
		"wrong type":          {json: `{"at": 1}`, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestUnixTimeConversion(t *testing.T) {
	now := time.Date(2019, 4, 4, 11, 35, 40, 123, time.UTC)
	u := AsUnixTime(now)
	if !u.Time().Equal(now.Truncate(time.Second)) {
		t.Fatalf("want %s, got %s", now.Truncate(time.Second), u.Time())
	}
	if got := u.String(); got != "2019-04-04T11:35:40Z" {
		t.Fatalf("unexpected string form %q", got)
	}
}
