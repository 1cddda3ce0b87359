// Package domain models the order webhook sent by the storefront
// (Wix Restaurants) as it appears on the wire.
package domain

import (
	"encoding/json"

	"github.com/Apurer/go-gin-order-bridge/internal/shared/money"
)

// OrderEvent is the event envelope carrying a storefront order.
type OrderEvent struct {
	ID                          string      `json:"id"`
	EntityFQDN                  string      `json:"entityFqdn"`
	Slug                        string      `json:"slug"`
	ActionEvent                 ActionEvent `json:"actionEvent"`
	EntityID                    Text        `json:"entityId"`
	EventTime                   Timestamp   `json:"eventTime"`
	TriggeredByAnonymizeRequest bool        `json:"triggeredByAnonymizeRequest"`
}

// Order returns the order carried by the event.
func (e *OrderEvent) Order() *Order {
	if e == nil {
		return nil
	}
	return &e.ActionEvent.BodyAsJSON.Order
}

type ActionEvent struct {
	BodyAsJSON BodyAsJSON `json:"bodyAsJson"`
}

type BodyAsJSON struct {
	Order Order `json:"order"`
}

// Order is the storefront order aggregate.
type Order struct {
	ID          Text        `json:"id"`
	CreatedDate Timestamp   `json:"createdDate"`
	UpdatedDate Timestamp   `json:"updatedDate"`
	Comment     *string     `json:"comment"`
	Currency    string      `json:"currency"`
	Status      string      `json:"status"`
	LineItems   []LineItem  `json:"lineItems" validate:"dive"`
	Discounts   []Discount  `json:"discounts"`
	Payments    []Payment   `json:"payments"`
	Fulfillment Fulfillment `json:"fulfillment"`
	Customer    Customer    `json:"customer"`
	Totals      Totals      `json:"totals"`
	Activities  []Activity  `json:"activities"`
	ChannelInfo ChannelInfo `json:"channelInfo"`
	Coupon      *string     `json:"coupon"`
	LoyaltyInfo *string     `json:"loyaltyInfo"`
}

// LineItem is one ordered dish with its chosen options.
type LineItem struct {
	Quantity         int              `json:"quantity" validate:"gte=1"`
	Price            money.Amount     `json:"price"`
	Comment          *string          `json:"comment"`
	DishOptions      []DishOption     `json:"dishOptions" schema:"optional" validate:"dive"`
	CatalogReference CatalogReference `json:"catalogReference"`
}

// DishOption is an option group offered for a dish.
type DishOption struct {
	Name             string            `json:"name"`
	MinChoices       int               `json:"minChoices" validate:"gte=0"`
	MaxChoices       int               `json:"maxChoices" validate:"gte=0"`
	Type             string            `json:"type"`
	AvailableChoices []AvailableChoice `json:"availableChoices"`
	DefaultChoices   []json.RawMessage `json:"defaultChoices"`
	SelectedChoices  []SelectedChoice  `json:"selectedChoices" validate:"dive"`
}

type AvailableChoice struct {
	ItemID string       `json:"itemId"`
	Price  money.Amount `json:"price"`
}

// SelectedChoice is a choice taken within a dish option; it may carry
// nested option groups of its own.
type SelectedChoice struct {
	Quantity         int              `json:"quantity" validate:"gte=1"`
	Price            money.Amount     `json:"price"`
	Comment          *string          `json:"comment"`
	DishOptions      []DishOption     `json:"dishOptions" schema:"optional" validate:"dive"`
	CatalogReference CatalogReference `json:"catalogReference"`
}

// CatalogReference points at a storefront menu item. Its identifiers are opaque here.
type CatalogReference struct {
	CatalogItemID          string  `json:"catalogItemId"`
	CatalogItemName        string  `json:"catalogItemName"`
	CatalogItemDescription *string `json:"catalogItemDescription" schema:"optional"`
	CatalogItemMedia       *string `json:"catalogItemMedia"`
}

type Discount struct {
	CatalogDiscountID   string       `json:"catalogDiscountId"`
	AppliedAmount       money.Amount `json:"appliedAmount"`
	CatalogDiscountType string       `json:"catalogDiscountType"`
	CatalogDiscountName string       `json:"catalogDiscountName"`
}

type Payment struct {
	Type                  string       `json:"type"`
	Amount                money.Amount `json:"amount"`
	Method                string       `json:"method"`
	ProviderTransactionID string       `json:"providerTransactionId"`
}

// Fulfillment describes how the order reaches the customer. Pickup orders
// carry no delivery details.
type Fulfillment struct {
	Type            string           `json:"type"`
	PromisedTime    Timestamp        `json:"promisedTime"`
	ASAP            bool             `json:"asap"`
	DeliveryDetails *DeliveryDetails `json:"deliveryDetails" schema:"optional"`
}

type DeliveryDetails struct {
	Charge  money.Amount `json:"charge"`
	Address Address      `json:"address"`
}

type Address struct {
	Formatted    string   `json:"formatted"`
	Country      *string  `json:"country"`
	City         string   `json:"city"`
	Street       string   `json:"street"`
	StreetNumber Text     `json:"streetNumber"`
	Apt          *Text    `json:"apt"`
	Floor        *Text    `json:"floor"`
	Entrance     *Text    `json:"entrance"`
	ZipCode      string   `json:"zipCode"`
	CountryCode  string   `json:"countryCode"`
	OnArrival    string   `json:"onArrival"`
	Approximate  bool     `json:"approximate"`
	Comment      *string  `json:"comment"`
	Location     Location `json:"location"`
	AddressLine2 *string  `json:"addressLine2"`
}

type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	ContactID string `json:"contactId"`
}

// Totals aggregates order amounts. Total may be absent on draft orders.
type Totals struct {
	Subtotal       money.Amount  `json:"subtotal"`
	Total          *money.Amount `json:"total" schema:"optional"`
	Delivery       *money.Amount `json:"delivery"`
	Tax            *money.Amount `json:"tax"`
	Discount       *money.Amount `json:"discount"`
	LoyaltySavings *money.Amount `json:"loyaltySavings"`
	Quantity       int           `json:"quantity" validate:"gte=0"`
	Tip            *money.Amount `json:"tip"`
}

type Activity struct {
	Timestamp Timestamp `json:"timestamp"`
	Message   string    `json:"message"`
}

type ChannelInfo struct {
	Type string `json:"type"`
}
