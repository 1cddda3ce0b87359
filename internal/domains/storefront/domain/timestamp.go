package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp is returned when a value is not an RFC 3339 string.
var ErrInvalidTimestamp = errors.New("value must be an RFC 3339 timestamp")

// Timestamp is an RFC 3339 instant that re-encodes with the exact text it
// was read from ("...44.990Z" stays "...44.990Z").
type Timestamp struct {
	at  time.Time
	raw string
}

// NewTimestamp wraps t. It encodes in RFC 3339 with nanoseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{at: t}
}

// Time returns the parsed instant.
func (t Timestamp) Time() time.Time { return t.at }

func (t Timestamp) String() string {
	if t.raw != "" {
		return t.raw
	}
	return t.at.Format(time.RFC3339Nano)
}

// SchemaExpect describes the accepted wire form.
func (Timestamp) SchemaExpect() string { return "RFC 3339 timestamp" }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, string(data))
	}
	at, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	*t = Timestamp{at: at, raw: s}
	return nil
}
