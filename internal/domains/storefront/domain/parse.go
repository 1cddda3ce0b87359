package domain

import (
	"encoding/json"

	"github.com/Apurer/go-gin-order-bridge/internal/shared/schema"
)

var (
	eventCodec   = schema.NewCodec("storefront order event")
	orderCodec   = schema.NewCodec("storefront order")
	webhookCodec = schema.NewCodec("storefront webhook")
)

// ParseOrderEvent validates and decodes a full order event. On failure it
// returns a *schema.ValidationError naming every offending field.
func ParseOrderEvent(raw []byte) (*OrderEvent, error) {
	var event OrderEvent
	if err := eventCodec.Decode(raw, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ParseOrder validates and decodes a bare order object.
func ParseOrder(raw []byte) (*Order, error) {
	var order Order
	if err := orderCodec.Decode(raw, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ParseWebhook validates the outer webhook body. The embedded event is not
// decoded until Webhook.OrderEvent is called.
func ParseWebhook(raw []byte) (*Webhook, error) {
	var hook Webhook
	if err := webhookCodec.Decode(raw, &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// Marshal re-encodes an event with storefront wire names.
func Marshal(event *OrderEvent) ([]byte, error) {
	return json.Marshal(event)
}
