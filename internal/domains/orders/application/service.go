package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Service orchestrates order intake use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// PlaceOrder stores the order once per idempotency key. A retry with the same
// key and content replays the stored order; different content is a conflict.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacedOrder, error) {
	order, err := domain.NewOrder(input.Customer, input.Items, input.Total, input.IdempotencyKey)
	if err != nil {
		return nil, mapError(err)
	}
	if order.SubmissionID != "" {
		if placed, err := s.replay(ctx, order); placed != nil || err != nil {
			return placed, err
		}
	}
	saved, err := s.repo.Create(ctx, order)
	if errors.Is(err, ports.ErrDuplicateSubmission) {
		// lost a race with a concurrent delivery of the same submission
		placed, replayErr := s.replay(ctx, order)
		if placed != nil || replayErr != nil {
			return placed, replayErr
		}
	}
	if err != nil {
		return nil, err
	}
	return &types.PlacedOrder{Order: saved}, nil
}

func (s *Service) replay(ctx context.Context, order *domain.Order) (*types.PlacedOrder, error) {
	existing, err := s.repo.GetBySubmissionID(ctx, order.SubmissionID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup submission: %w", err)
	}
	if !existing.SameContent(order) {
		return nil, ErrIdempotencyConflict
	}
	return &types.PlacedOrder{Order: existing, Replayed: true}, nil
}

// ListOrders returns the newest orders. Non-positive limits fall back to the default.
func (s *Service) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
