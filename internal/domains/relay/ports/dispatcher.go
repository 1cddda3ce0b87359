package ports

import (
	"context"
	"errors"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
)

// ErrDispatchRejected marks a permanent refusal by the POS; retrying the same
// body will not help.
var ErrDispatchRejected = errors.New("pos rejected order")

// Dispatcher hands a serialized POS order to the point-of-sale system.
// Implementations use ReceiptID as the idempotency key.
type Dispatcher interface {
	Dispatch(ctx context.Context, delivery types.DeliveryInput) error
}
