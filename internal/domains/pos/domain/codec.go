package domain

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/Apurer/go-gin-order-bridge/internal/shared/schema"
)

var codec = schema.NewCodec("pos order", schema.StructRule{
	Fn:    childrenCountRule,
	Types: []any{OrderItem{}},
})

func childrenCountRule(sl validator.StructLevel) {
	item := sl.Current().Interface().(OrderItem)
	if item.ChildrenCount != len(item.Children) {
		sl.ReportError(item.ChildrenCount, "childrencount", "ChildrenCount", "eqlen", strconv.Itoa(len(item.Children)))
	}
}

// ParseOrder validates and decodes a POS order. On failure it returns a
// *schema.ValidationError naming every offending field.
func ParseOrder(raw []byte) (*Order, error) {
	var order Order
	if err := codec.Decode(raw, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Validate checks the semantic rules of an order built in memory.
func Validate(order *Order) error {
	return codec.Validate(order)
}

// Serialize validates the order and renders compact JSON: no insignificant
// whitespace, string values left exactly as they are.
func Serialize(order *Order) ([]byte, error) {
	if err := Validate(order); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(order); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
