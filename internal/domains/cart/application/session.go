package application

import (
	"context"
	"sync"

	"github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/cart/ports"
)

// Session owns the in-memory cart of one storefront session and keeps it in
// lockstep with its durable mirror. Every mutation is staged on a copy,
// persisted, and only then made visible and rendered.
type Session struct {
	mu          sync.Mutex
	store       *Store
	presenter   ports.Presenter
	shippingFee int64
	cart        domain.Cart
}

type Option func(*Session)

// WithPresenter sets the UI collaborator that receives renders.
func WithPresenter(p ports.Presenter) Option {
	return func(s *Session) {
		if p != nil {
			s.presenter = p
		}
	}
}

// WithShippingFee overrides the flat shipping fee.
func WithShippingFee(fee int64) Option {
	return func(s *Session) {
		if fee >= 0 {
			s.shippingFee = fee
		}
	}
}

// NewSession loads the persisted cart; storage always wins over in-memory defaults.
func NewSession(ctx context.Context, store *Store, opts ...Option) *Session {
	s := &Session{
		store:       store,
		presenter:   ports.NoopPresenter,
		shippingFee: domain.DefaultShippingFee,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.cart = store.Load(ctx)
	return s
}

// Add appends a line, persists, renders and tries to bring the cart into view.
func (s *Session) Add(ctx context.Context, req domain.AddRequest) (domain.View, error) {
	item, err := domain.NewItem(req)
	if err != nil {
		return domain.View{}, mapError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit(ctx, s.cart.Append(item)); err != nil {
		return domain.View{}, err
	}
	view := s.render(ctx)
	s.presenter.FocusCart(ctx)
	return view, nil
}

// ChangeSize resizes the line at index. A stale index is ignored. The size
// control already shows the new value, so nothing is re-rendered.
func (s *Session) ChangeSize(ctx context.Context, index int, size domain.Size) error {
	if !size.Valid() {
		return ErrInvalidSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.cart.WithSize(index, size)
	if !ok {
		return nil
	}
	return s.commit(ctx, next)
}

// Remove drops the line at index and re-renders. A stale index is ignored.
func (s *Session) Remove(ctx context.Context, index int) (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.cart.Without(index)
	if !ok {
		return domain.Render(s.cart, s.shippingFee), nil
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.View{}, err
	}
	return s.render(ctx), nil
}

// Clear empties the cart, persists and re-renders.
func (s *Session) Clear(ctx context.Context) (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit(ctx, domain.Cart{}); err != nil {
		return domain.View{}, err
	}
	return s.render(ctx), nil
}

// Refresh renders the current cart without changing it.
func (s *Session) Refresh(ctx context.Context) domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render(ctx)
}

// Items returns a snapshot of the current lines.
func (s *Session) Items() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Session) ShippingFee() int64 {
	return s.shippingFee
}

// commit persists next and swaps it in. On failure memory keeps the
// previous cart, which is still what storage holds.
func (s *Session) commit(ctx context.Context, next domain.Cart) error {
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.cart = next
	return nil
}

func (s *Session) render(ctx context.Context) domain.View {
	view := domain.Render(s.cart, s.shippingFee)
	s.presenter.Present(ctx, view)
	return view
}

var _ ports.Service = (*Session)(nil)
