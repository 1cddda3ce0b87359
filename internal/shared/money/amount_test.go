package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		fixed string
	}{
		{in: "10", cents: 1000, fixed: "10.00"},
		{in: "2.5", cents: 250, fixed: "2.50"},
		{in: "0.00", cents: 0, fixed: "0.00"},
		{in: "-0.75", cents: -75, fixed: "-0.75"},
		{in: "1.500", cents: 150, fixed: "1.50"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			a, err := Parse(tc.in)
			require.NoError(t, err)
			cents, err := a.Cents()
			require.NoError(t, err)
			assert.Equal(t, tc.cents, cents)
			fixed, err := a.Fixed()
			require.NoError(t, err)
			assert.Equal(t, tc.fixed, fixed)
			assert.Equal(t, tc.in, a.String())
		})
	}
}

func TestParse_KeepsExtraPrecision(t *testing.T) {
	a, err := Parse("0.825")
	require.NoError(t, err)
	assert.True(t, a.Decimal().Equal(MustParse("0.825").Decimal()))

	_, err = a.Cents()
	require.ErrorIs(t, err, ErrPrecision)
	_, err = a.Fixed()
	require.ErrorIs(t, err, ErrPrecision)
	assert.Contains(t, err.Error(), "more than 2 fractional digits")
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse("abc")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("  ")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWholeUnits(t *testing.T) {
	for in, want := range map[string]int64{"2.00": 2, "10": 10, "-3.0": -3} {
		got, err := MustParse(in).WholeUnits()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"2.50", "2.49", "0.01"} {
		_, err := MustParse(in).WholeUnits()
		require.ErrorIs(t, err, ErrFractional, in)
	}
}

func TestFromMinor(t *testing.T) {
	fixed, err := FromMinor(0).Fixed()
	require.NoError(t, err)
	assert.Equal(t, "0.00", fixed)
	assert.True(t, FromMinor(250).Equal(MustParse("2.5")))
}

func TestAmount_JSONKeepsWireText(t *testing.T) {
	cases := []string{`"2.00"`, `"2.5"`, `" 7 "`, `"0.825"`, `1.5`, `12`, `2.50`, `1e2`}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(in), &a))
			out, err := json.Marshal(a)
			require.NoError(t, err)
			assert.Equal(t, in, string(out))
		})
	}

	var quoted Amount
	require.NoError(t, json.Unmarshal([]byte(`"2.00"`), &quoted))
	assert.True(t, quoted.Quoted())

	var bad Amount
	require.Error(t, json.Unmarshal([]byte(`true`), &bad))
	require.Error(t, json.Unmarshal([]byte(`"ten"`), &bad))
}
