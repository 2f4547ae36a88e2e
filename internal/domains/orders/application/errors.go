package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrIdempotencyConflict means the key was already used for a different order.
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different order")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingFields) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
