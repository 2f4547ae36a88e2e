package ports

import (
	"context"
	"errors"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDuplicateSubmission is returned by Create when the submission id is already stored.
	ErrDuplicateSubmission = errors.New("order submission already stored")
)

// Repository persists received orders.
type Repository interface {
	// Create inserts a new order and assigns its ID and CreatedAt.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	// ListRecent returns up to limit orders, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
}
