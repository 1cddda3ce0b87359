package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Placeholder fills POS fields that have no source value.
const Placeholder = "N/A"

// IntField is a numeric POS field that may carry Placeholder instead of a number.
type IntField struct {
	value       int64
	placeholder bool
}

// Int wraps a concrete value.
func Int(v int64) IntField { return IntField{value: v} }

// PlaceholderInt returns a field holding Placeholder.
func PlaceholderInt() IntField { return IntField{placeholder: true} }

// Value returns the number and false when the field holds the placeholder.
func (f IntField) Value() (int64, bool) {
	if f.placeholder {
		return 0, false
	}
	return f.value, true
}

func (f IntField) IsPlaceholder() bool { return f.placeholder }

func (f IntField) String() string {
	if f.placeholder {
		return Placeholder
	}
	return strconv.FormatInt(f.value, 10)
}

// SchemaExpect describes the accepted wire forms.
func (IntField) SchemaExpect() string { return `integer or "` + Placeholder + `"` }

func (f IntField) MarshalJSON() ([]byte, error) {
	if f.placeholder {
		return json.Marshal(Placeholder)
	}
	return []byte(strconv.FormatInt(f.value, 10)), nil
}

func (f *IntField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != Placeholder {
			return fmt.Errorf("expected integer or %q, got %q", Placeholder, s)
		}
		*f = PlaceholderInt()
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("expected integer or %q, got %s", Placeholder, string(data))
	}
	*f = Int(v)
	return nil
}
