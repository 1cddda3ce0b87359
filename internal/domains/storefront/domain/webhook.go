package domain

// Webhook is the request body the storefront posts to the hook endpoint.
// Data.Data holds the OrderEvent encoded as a JSON string.
type Webhook struct {
	Data WebhookData `json:"data"`
}

type WebhookData struct {
	EventType  string `json:"eventType"`
	InstanceID string `json:"instanceId"`
	Data       string `json:"data" validate:"required"`
}

// OrderEvent decodes the event embedded in the webhook.
func (w *Webhook) OrderEvent() (*OrderEvent, error) {
	return ParseOrderEvent([]byte(w.Data.Data))
}
