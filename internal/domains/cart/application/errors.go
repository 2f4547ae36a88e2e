package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
)

var (
	// ErrInvalidItem signals an add request violated a line invariant.
	ErrInvalidItem = errors.New("invalid cart item")
	// ErrInvalidSize signals a size outside S, M, L, XL.
	ErrInvalidSize = domain.ErrInvalidSize
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidSize) {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	return err
}
