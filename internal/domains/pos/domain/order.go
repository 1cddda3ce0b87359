// Package domain models the order payload accepted by the point-of-sale
// (Presto) ingestion endpoint.
package domain

// Item type tags.
const (
	TypeItem   = "item"
	TypeOption = "option"
)

// Order is the POS order aggregate.
type Order struct {
	ID           int64         `json:"id"`
	Contact      Contact       `json:"contact"`
	Delivery     Delivery      `json:"delivery"`
	OrderItems   []OrderItem   `json:"orderItems" validate:"dive"`
	Comment      string        `json:"comment"`
	TakeoutPacks string        `json:"takeoutPacks"`
	OrderCharges []OrderCharge `json:"orderCharges"`
	Price        string        `json:"price"`
	Payments     []Payment     `json:"payments"`
}

type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type Delivery struct {
	Type       string   `json:"type"`
	Address    Address  `json:"address"`
	Charge     string   `json:"charge"`
	NumPeople  string   `json:"numppl"`
	WorkerCode IntField `json:"workercode"`
}

// Address has no street name; the POS identifies the place by the
// formatted line plus house details.
type Address struct {
	Formatted string `json:"formatted"`
	City      string `json:"city"`
	Number    string `json:"number"`
	Entrance  string `json:"entrance"`
	Floor     string `json:"floor"`
	Apt       string `json:"apt"`
	Comment   string `json:"comment"`
}

// OrderItem is a dish line. ChildrenCount always equals len(Children).
type OrderItem struct {
	Type          string       `json:"type" validate:"oneof=item option"`
	ID            IntField     `json:"id"`
	Price         int64        `json:"price"`
	Comment       string       `json:"comment"`
	Children      []ItemOption `json:"children" validate:"dive"`
	ItemCount     int          `json:"itemcount" validate:"gte=0"`
	ChildrenCount int          `json:"childrencount"`
}

// ItemOption is an option sub-line of an order item.
type ItemOption struct {
	Type    string   `json:"type" validate:"oneof=item option"`
	ID      IntField `json:"id"`
	Price   int64    `json:"price"`
	Comment string   `json:"comment"`
}

type OrderCharge struct {
	Amount int64 `json:"amount"`
}

type Payment struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
	Card   Card   `json:"card"`
}

type Card struct {
	Number      string   `json:"number"`
	ExpireMonth IntField `json:"expireMonth"`
	ExpireYear  IntField `json:"expireYear"`
	HolderID    string   `json:"holderId"`
	HolderName  string   `json:"holderName"`
}

// PlaceholderCard is the card attached to payments that carry no card data.
func PlaceholderCard() Card {
	return Card{
		Number:      Placeholder,
		ExpireMonth: PlaceholderInt(),
		ExpireYear:  PlaceholderInt(),
		HolderID:    Placeholder,
		HolderName:  Placeholder,
	}
}

// Clone returns a deep copy; slices in the copy never share backing arrays
// with the original.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.OrderItems != nil {
		c.OrderItems = make([]OrderItem, len(o.OrderItems))
		for i, item := range o.OrderItems {
			if item.Children != nil {
				item.Children = append([]ItemOption(nil), item.Children...)
			}
			c.OrderItems[i] = item
		}
	}
	if o.OrderCharges != nil {
		c.OrderCharges = append([]OrderCharge(nil), o.OrderCharges...)
	}
	if o.Payments != nil {
		c.Payments = append([]Payment(nil), o.Payments...)
	}
	return &c
}

// SyncCounts re-derives ChildrenCount from the children list.
func (i *OrderItem) SyncCounts() {
	i.ChildrenCount = len(i.Children)
}
