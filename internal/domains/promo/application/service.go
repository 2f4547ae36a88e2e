package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Apurer/choufli-storefront/internal/domains/promo/domain"
	"github.com/Apurer/choufli-storefront/internal/platform/kv"
)

// RedeemedKey holds the one-shot redemption flag. It is never reset.
const RedeemedKey = "promo.redeemed"

const redeemedValue = "true"

// Service gates the single promo code. The discounted price only lives for
// the current session; the redemption flag is durable.
type Service struct {
	mu     sync.Mutex
	kv     kv.Store
	offer  domain.Offer
	price  int64
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService reads the base price once from offer.
func NewService(store kv.Store, offer domain.Offer, opts ...Option) *Service {
	s := &Service{
		kv:     store,
		offer:  offer,
		price:  offer.BasePrice,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Redeem applies code. Once the flag is set every attempt fails with
// ErrAlreadyUsed, the correct code included.
func (s *Service) Redeem(ctx context.Context, code string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	redeemed, err := s.redeemed(ctx)
	if err != nil {
		return s.price, err
	}
	if redeemed {
		return s.price, ErrAlreadyUsed
	}
	if !s.offer.Matches(code) {
		return s.price, ErrInvalidCode
	}
	if err := s.kv.Put(ctx, RedeemedKey, []byte(redeemedValue)); err != nil {
		return s.price, fmt.Errorf("persist promo redemption: %w", err)
	}
	s.price = s.offer.DiscountedPrice()
	s.logger.InfoContext(ctx, "promo code redeemed",
		slog.Int64("price.base", s.offer.BasePrice), slog.Int64("price.discounted", s.price))
	return s.price, nil
}

// Price is the unit price recorded by subsequent adds of the promoted product.
func (s *Service) Price() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.price
}

// Offer returns the configured offer.
func (s *Service) Offer() domain.Offer {
	return s.offer
}

// Redeemed reports whether the code has ever been used from this storage.
func (s *Service) Redeemed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redeemed(ctx)
}

func (s *Service) redeemed(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, RedeemedKey)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load promo redemption: %w", err)
	}
	return string(raw) == redeemedValue, nil
}
