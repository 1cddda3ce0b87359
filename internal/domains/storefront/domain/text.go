package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidText is returned when a value is neither a string nor an integer.
var ErrInvalidText = errors.New("value must be a string or an integer")

// Text holds address parts the storefront sends either as strings or as
// bare integers ("235" or 235). The original form is kept for re-encoding.
type Text struct {
	value   string
	numeric bool
}

// NewText wraps a string value.
func NewText(value string) Text {
	return Text{value: value}
}

func (t Text) String() string { return t.value }

// OrEmpty returns the text of a nullable value, or "" when it is null.
func (t *Text) OrEmpty() string {
	if t == nil {
		return ""
	}
	return t.value
}

// SchemaExpect describes the accepted wire forms.
func (Text) SchemaExpect() string { return "string or integer" }

func (t Text) MarshalJSON() ([]byte, error) {
	if t.numeric {
		return []byte(t.value), nil
	}
	return json.Marshal(t.value)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidText, string(data))
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidText, n.String())
	}
	*t = Text{value: n.String(), numeric: true}
	return nil
}
