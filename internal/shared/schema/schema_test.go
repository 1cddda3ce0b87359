package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-bridge/internal/shared/money"
)

type testLine struct {
	Quantity int          `json:"quantity" validate:"gte=1"`
	Price    money.Amount `json:"price"`
	Note     *string      `json:"note"`
}

type testDoc struct {
	Name    string        `json:"name"`
	At      time.Time     `json:"at"`
	Lines   []testLine    `json:"lines" validate:"dive"`
	Total   *money.Amount `json:"total" schema:"optional"`
	Count   int           `json:"count"`
	Skipped string        `json:"-"`
}

func TestDecode_Valid(t *testing.T) {
	codec := NewCodec("test doc")
	var doc testDoc
	err := codec.Decode([]byte(`{
		"name": "a",
		"at": "2021-07-07T10:37:44.994Z",
		"lines": [{"quantity": 2, "price": "1.50", "note": null}],
		"count": 1,
		"extra": {"ignored": true}
	}`), &doc)
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Name)
	require.Len(t, doc.Lines, 1)
	cents, err := doc.Lines[0].Price.Cents()
	require.NoError(t, err)
	assert.Equal(t, int64(150), cents)
	assert.Nil(t, doc.Lines[0].Note)
	assert.Nil(t, doc.Total)
}

func TestDecode_CollectsEveryFault(t *testing.T) {
	codec := NewCodec("test doc")
	var doc testDoc
	err := codec.Decode([]byte(`{
		"at": "yesterday",
		"lines": [{"quantity": "2", "price": "abc"}, {"quantity": 1.5, "price": 1, "note": 3}],
		"count": null
	}`), &doc)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"at",
		"count",
		"lines[0].note",
		"lines[0].price",
		"lines[0].quantity",
		"lines[1].note",
		"lines[1].quantity",
		"name",
	}, verr.Paths())
	assert.Equal(t, "name", verr.Faults[0].Path)
	assert.Equal(t, "missing", verr.Faults[0].Actual)
	assert.Contains(t, verr.Fields()["lines[0].price"], "number or numeric string")
	assert.Contains(t, verr.Fields()["lines[0].note"], "missing")
}

func TestDecode_RejectsKeysDifferingOnlyInCase(t *testing.T) {
	codec := NewCodec("test doc")
	var doc testDoc
	err := codec.Decode([]byte(`{
		"name": "a",
		"NAME": "b",
		"at": "2021-07-07T10:37:44.994Z",
		"lines": [{"quantity": 1, "price": "1.00", "Price": "9.00", "note": null}],
		"count": 1
	}`), &doc)
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"NAME", "lines[0].Price"}, verr.Paths())
	assert.Contains(t, verr.Fields()["NAME"], "differing only in case")
}

func TestDecode_SemanticRules(t *testing.T) {
	codec := NewCodec("test doc", StructRule{
		Fn: func(sl validator.StructLevel) {
			doc := sl.Current().Interface().(testDoc)
			if doc.Count != len(doc.Lines) {
				sl.ReportError(doc.Count, "count", "Count", "eqlen", "lines")
			}
		},
		Types: []any{testDoc{}},
	})
	var doc testDoc
	err := codec.Decode([]byte(`{
		"name": "a",
		"at": "2021-07-07T10:37:44Z",
		"lines": [{"quantity": 0, "price": 1, "note": "x"}],
		"count": 3
	}`), &doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("lines[0].quantity"))
	assert.True(t, verr.Has("count"))
}

func TestDecode_MalformedJSON(t *testing.T) {
	codec := NewCodec("test doc")
	var doc testDoc
	err := codec.Decode([]byte(`{"name": `), &doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "$", verr.Faults[0].Path)

	err = codec.Decode([]byte(`{} {}`), &doc)
	require.ErrorIs(t, err, ErrValidation)
}

func TestDecode_RejectsNonPointer(t *testing.T) {
	codec := NewCodec("test doc")
	err := codec.Decode([]byte(`{}`), testDoc{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}
