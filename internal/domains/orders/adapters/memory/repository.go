package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu           sync.RWMutex
	orders       map[int64]*domain.Order
	bySubmission map[string]int64
	nextID       int64
	now          func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		orders:       map[int64]*domain.Order{},
		bySubmission: map[string]int64{},
		now:          time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.SubmissionID != "" {
		if _, ok := r.bySubmission[clone.SubmissionID]; ok {
			return nil, ports.ErrDuplicateSubmission
		}
	}
	r.nextID++
	clone.ID = r.nextID
	clone.CreatedAt = r.now().UTC()
	r.orders[clone.ID] = clone
	if clone.SubmissionID != "" {
		r.bySubmission[clone.SubmissionID] = clone.ID
	}
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) GetBySubmissionID(_ context.Context, submissionID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.bySubmission[submissionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.orders[id].Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.bySubmission, order.SubmissionID)
	delete(r.orders, id)
	return nil
}

func (r *Repository) ListRecent(_ context.Context, limit int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	slices.SortFunc(list, func(a, b *domain.Order) int { return cmp.Compare(b.ID, a.ID) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
