package application

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pos "github.com/Apurer/go-gin-order-bridge/internal/domains/pos/domain"
	storefront "github.com/Apurer/go-gin-order-bridge/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/money"
)

// Notice records a mapping that was skipped because no rule exists for it yet.
// Err always matches ErrNotYetSupported.
type Notice struct {
	Field string
	Err   error
}

func (n Notice) String() string {
	return n.Field + ": " + n.Err.Error()
}

// Report describes the mappings skipped while transforming an order.
type Report struct {
	Notices []Notice
}

// Unsupported returns the notices as strings, in the order they were recorded.
func (r Report) Unsupported() []string {
	out := make([]string, 0, len(r.Notices))
	for _, n := range r.Notices {
		out = append(out, n.String())
	}
	return out
}

// note keeps ErrNotYetSupported branches in the report and passes any other
// error through.
func (r *Report) note(field string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotYetSupported) {
		return err
	}
	r.Notices = append(r.Notices, Notice{Field: field, Err: err})
	return nil
}

// Transform maps a validated storefront order onto a copy of template.
// template is never modified. Both inputs are assumed to have passed schema
// validation.
func Transform(source *storefront.Order, template *pos.Order) (*pos.Order, error) {
	order, _, err := TransformWithReport(source, template)
	return order, err
}

// TransformWithReport is Transform plus the list of skipped mappings.
func TransformWithReport(source *storefront.Order, template *pos.Order) (*pos.Order, Report, error) {
	var report Report
	if source == nil {
		return nil, report, fmt.Errorf("%w: source order is nil", ErrInvalidInput)
	}
	target := template.Clone()
	if target == nil {
		target = &pos.Order{}
	}

	id, err := orderID(source.ID)
	if err != nil {
		return nil, report, err
	}
	target.ID = id

	target.Contact = pos.Contact{
		FirstName: source.Customer.FirstName,
		LastName:  source.Customer.LastName,
		Phone:     source.Customer.Phone,
	}

	delivery, err := mapDelivery(source.Fulfillment)
	if err != nil {
		return nil, report, err
	}
	target.Delivery = delivery

	target.OrderItems = make([]pos.OrderItem, 0, len(source.LineItems))
	for i := range source.LineItems {
		price, err := source.LineItems[i].Price.WholeUnits()
		if err != nil {
			return nil, report, amountError(fmt.Sprintf("orderItems[%d].price", i), err)
		}
		item, err := mapLineItem(source.LineItems[i], price)
		if err := report.note(fmt.Sprintf("orderItems[%d].children", i), err); err != nil {
			return nil, report, err
		}
		target.OrderItems = append(target.OrderItems, item)
	}

	target.Comment = stringOrEmpty(source.Comment)
	target.TakeoutPacks = pos.Placeholder

	charges, err := mapCharges(source.Discounts)
	if err := report.note("orderCharges", err); err != nil {
		return nil, report, err
	}
	target.OrderCharges = charges

	if source.Totals.Total == nil {
		return nil, report, &MissingValueError{Field: "price", Reason: "totals.total is null"}
	}
	total, err := source.Totals.Total.Fixed()
	if err != nil {
		return nil, report, amountError("price", err)
	}
	target.Price = total

	target.Payments = make([]pos.Payment, 0, len(source.Payments))
	for i, p := range source.Payments {
		amount, err := p.Amount.WholeUnits()
		if err != nil {
			return nil, report, amountError(fmt.Sprintf("payments[%d].amount", i), err)
		}
		target.Payments = append(target.Payments, pos.Payment{
			Type:   p.Type,
			Amount: amount,
			Card:   pos.PlaceholderCard(),
		})
	}
	return target, report, nil
}

func orderID(id storefront.Text) (int64, error) {
	raw := strings.TrimSpace(id.String())
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &MissingValueError{Field: "id", Reason: fmt.Sprintf("source order id %q is not numeric", raw)}
	}
	return v, nil
}

// amountError reports a source amount the target field cannot hold without
// rounding.
func amountError(field string, err error) error {
	return &MissingValueError{Field: field, Reason: err.Error()}
}

func mapDelivery(f storefront.Fulfillment) (pos.Delivery, error) {
	zero, _ := money.FromMinor(0).Fixed()
	delivery := pos.Delivery{
		Type:       f.Type,
		Charge:     zero,
		NumPeople:  pos.Placeholder,
		WorkerCode: pos.PlaceholderInt(),
	}
	details := f.DeliveryDetails
	if details == nil {
		return delivery, nil
	}
	addr := details.Address
	delivery.Address = pos.Address{
		Formatted: addr.Formatted,
		City:      addr.City,
		Number:    addr.StreetNumber.String(),
		Entrance:  addr.Entrance.OrEmpty(),
		Floor:     addr.Floor.OrEmpty(),
		Apt:       addr.Apt.OrEmpty(),
		Comment:   stringOrEmpty(addr.Comment),
	}
	charge, err := details.Charge.Fixed()
	if err != nil {
		return delivery, amountError("delivery.charge", err)
	}
	delivery.Charge = charge
	return delivery, nil
}

// mapLineItem builds a fresh item per call so no two items share state.
// The item is complete even when the returned error is ErrNotYetSupported.
func mapLineItem(line storefront.LineItem, price int64) (pos.OrderItem, error) {
	item := pos.OrderItem{
		Type:      pos.TypeItem,
		ID:        pos.PlaceholderInt(),
		Price:     price,
		Comment:   stringOrEmpty(line.Comment),
		ItemCount: line.Quantity,
	}
	children, err := mapDishOptions(line.DishOptions)
	item.Children = children
	item.SyncCounts()
	return item, err
}

// mapDishOptions has no agreed rule for flattening option groups into POS
// option lines yet.
func mapDishOptions(groups []storefront.DishOption) ([]pos.ItemOption, error) {
	if len(groups) == 0 {
		return []pos.ItemOption{}, nil
	}
	return []pos.ItemOption{}, fmt.Errorf("%w: %d dish option group(s)", ErrNotYetSupported, len(groups))
}

// mapCharges has no agreed rule for turning discounts into POS charges yet.
func mapCharges(discounts []storefront.Discount) ([]pos.OrderCharge, error) {
	if len(discounts) == 0 {
		return []pos.OrderCharge{}, nil
	}
	return []pos.OrderCharge{}, fmt.Errorf("%w: %d discount(s)", ErrNotYetSupported, len(discounts))
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
