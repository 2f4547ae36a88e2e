package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	"github.com/Apurer/choufli-storefront/internal/platform/kv"
)

// ItemsKey is the storage key holding the serialized cart.
const ItemsKey = "cart.items"

// Store mirrors the cart into durable key/value storage.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
}

// NewStore wires a cart store on top of kv. A nil logger discards recovery logs.
func NewStore(store kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: store, logger: logger}
}

// Load returns the persisted cart. A missing key, an unreadable value or
// anything that is not a JSON array of lines is treated as an empty cart:
// corrupt state is recovered here and never reaches the caller.
func (s *Store) Load(ctx context.Context) domain.Cart {
	raw, err := s.kv.Get(ctx, ItemsKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.WarnContext(ctx, "cart storage unreadable, starting empty", slog.String("error", err.Error()))
		}
		return domain.Cart{}
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		s.logger.WarnContext(ctx, "cart storage corrupt, starting empty", slog.String("error", err.Error()))
		return domain.Cart{}
	}
	if cart == nil {
		return domain.Cart{}
	}
	return cart
}

// Save overwrites the persisted cart with the full content of cart.
func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	if cart == nil {
		cart = domain.Cart{}
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Put(ctx, ItemsKey, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
