// Package logging provides the dispatcher used when no POS endpoint is
// configured: it records the hand-over and drops the body.
package logging

import (
	"context"
	"io"
	"log/slog"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
)

type Dispatcher struct {
	logger *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, delivery types.DeliveryInput) error {
	d.logger.LogAttrs(ctx, slog.LevelInfo, "pos dispatch skipped, no POS endpoint configured",
		slog.Int64("order.id", delivery.OrderID),
		slog.String("receipt_id", delivery.ReceiptID),
		slog.Int("body_bytes", len(delivery.Body)),
	)
	return nil
}

var _ ports.Dispatcher = (*Dispatcher)(nil)
