// Package fixtures exposes sample payloads shared by tests across packages.
package fixtures

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"
)

var (
	//go:embed testdata/order_event.json
	orderEvent []byte
	//go:embed testdata/pos_template.json
	posTemplate []byte
)

// ExampleOrderID is the order id carried by the example event.
const ExampleOrderID int64 = 64783425355

// OrderEvent returns the example storefront order event.
func OrderEvent() []byte {
	return bytes.Clone(orderEvent)
}

// POSTemplate returns a populated POS order used as a mapping skeleton.
func POSTemplate() []byte {
	return bytes.Clone(posTemplate)
}

// Webhook wraps the example event the way the storefront posts it.
func Webhook() []byte {
	return WebhookFor(orderEvent)
}

// WebhookFor double-encodes event into a webhook body.
func WebhookFor(event []byte) []byte {
	body, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"eventType":  "wix.restaurants.v3.order_created",
			"instanceId": "c5c1c1b6-3b56-4a3b-8c86-1ea0b0c6b1a1",
			"data":       string(event),
		},
	})
	if err != nil {
		panic(err)
	}
	return body
}

// OrderEventWith returns the example event after edit has modified the decoded
// order object (actionEvent.bodyAsJson.order).
func OrderEventWith(edit func(order map[string]any)) []byte {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(orderEvent))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		panic(err)
	}
	order := doc["actionEvent"].(map[string]any)["bodyAsJson"].(map[string]any)["order"].(map[string]any)
	edit(order)
	out, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return out
}

// Path walks a decoded object along a dotted path and returns the parent
// object plus the final key.
func Path(obj map[string]any, dotted string) (map[string]any, string) {
	parts := strings.Split(dotted, ".")
	for _, p := range parts[:len(parts)-1] {
		obj = obj[p].(map[string]any)
	}
	return obj, parts[len(parts)-1]
}
