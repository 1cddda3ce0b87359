// Package money holds the decimal amount type shared by the order models.
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits of a rendered amount.
const Scale = 2

var (
	// ErrInvalidAmount is returned when a value cannot be read as a monetary amount.
	ErrInvalidAmount = errors.New("invalid monetary amount")
	// ErrPrecision is returned when an amount has more fractional digits than
	// the requested rendering can hold.
	ErrPrecision = errors.New("amount has more than 2 fractional digits")
	// ErrFractional is returned when a whole number of units is required.
	ErrFractional = errors.New("amount is not a whole number of units")
)

const maxMinor = 1<<62 - 1

// Amount is an exact decimal monetary value. Amounts read from JSON keep
// their wire text so re-encoding writes back exactly what was received.
// The zero value is 0.
type Amount struct {
	value  decimal.Decimal
	raw    string
	quoted bool
}

// FromMinor builds an amount from minor units (cents).
func FromMinor(minor int64) Amount {
	return Amount{value: decimal.New(minor, -Scale)}
}

// Parse reads a decimal string such as "10", "2.5" or "0.825".
func Parse(raw string) (Amount, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amount{}, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return Amount{value: d, raw: raw}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(raw string) Amount {
	a, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the exact value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// Cents returns the amount in minor units. It fails instead of rounding
// when the amount carries more than two fractional digits.
func (a Amount) Cents() (int64, error) {
	if !a.value.Equal(a.value.Truncate(Scale)) {
		return 0, fmt.Errorf("%w: %s", ErrPrecision, a.value.String())
	}
	shifted := a.value.Shift(Scale)
	if shifted.Abs().GreaterThan(decimal.NewFromInt(maxMinor)) {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, a.value.String())
	}
	return shifted.IntPart(), nil
}

// Fixed renders the amount with exactly two fractional digits. It fails
// instead of rounding when more digits are present.
func (a Amount) Fixed() (string, error) {
	if _, err := a.Cents(); err != nil {
		return "", err
	}
	return a.value.StringFixed(Scale), nil
}

// WholeUnits returns the amount in whole currency units. It fails instead
// of rounding when the amount has a fractional part.
func (a Amount) WholeUnits() (int64, error) {
	if !a.value.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrFractional, a.value.String())
	}
	if a.value.Abs().GreaterThan(decimal.NewFromInt(maxMinor)) {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, a.value.String())
	}
	return a.value.IntPart(), nil
}

// String returns the wire text when the amount was read from JSON, the
// decimal value otherwise.
func (a Amount) String() string {
	if a.raw != "" {
		return a.raw
	}
	return a.value.String()
}

// Quoted reports whether the amount was read from a JSON string.
func (a Amount) Quoted() bool { return a.quoted }

// Equal compares two amounts by value.
func (a Amount) Equal(other Amount) bool { return a.value.Equal(other.value) }

// SchemaExpect describes the accepted wire forms.
func (Amount) SchemaExpect() string { return "number or numeric string" }

// MarshalJSON writes the amount back in the form it was read.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch {
	case a.quoted:
		return json.Marshal(a.String())
	case a.raw != "":
		return []byte(a.raw), nil
	default:
		return []byte(a.value.String()), nil
	}
}

// UnmarshalJSON accepts a JSON number or a string holding a number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAmount, err)
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		parsed.quoted = true
		*a = parsed
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	parsed, err := Parse(n.String())
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
