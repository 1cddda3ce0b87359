package application

import (
	"errors"
	"fmt"

	storefront "github.com/Apurer/go-gin-order-bridge/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/money"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/schema"
)

var (
	// ErrInvalidInput signals the payload could not be read as an order.
	ErrInvalidInput = errors.New("invalid order payload")
	// ErrMissingDerivedValue signals a required POS field has no source value.
	ErrMissingDerivedValue = errors.New("missing required derived value")
	// ErrNotYetSupported marks mappings that have no agreed business rule.
	// Transform records these instead of returning them.
	ErrNotYetSupported = errors.New("mapping not yet supported")
	// ErrArtifactWrite signals the transcoded order could not be stored.
	ErrArtifactWrite = errors.New("artifact write failed")
	// ErrDelivery signals the order could not be handed to the POS.
	ErrDelivery = errors.New("pos delivery failed")
)

// MissingValueError names the POS field that could not be derived.
type MissingValueError struct {
	Field  string
	Reason string
}

func (e *MissingValueError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrMissingDerivedValue, e.Field)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrMissingDerivedValue, e.Field, e.Reason)
}

func (e *MissingValueError) Unwrap() error { return ErrMissingDerivedValue }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, schema.ErrValidation) ||
		errors.Is(err, money.ErrInvalidAmount) ||
		errors.Is(err, money.ErrPrecision) ||
		errors.Is(err, storefront.ErrInvalidText) ||
		errors.Is(err, storefront.ErrInvalidTimestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
