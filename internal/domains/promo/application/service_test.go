package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/choufli-storefront/internal/domains/promo/domain"
	"github.com/Apurer/choufli-storefront/internal/platform/kv"
)

func newTestService(t *testing.T, store kv.Store) *Service {
	t.Helper()
	offer, err := domain.NewOffer("M&M", 10, 125)
	require.NoError(t, err)
	return NewService(store, offer)
}

func TestRedeem_FirstCorrectCodeDiscounts(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	require.Equal(t, int64(125), svc.Price())

	price, err := svc.Redeem(context.Background(), "m&m")
	require.NoError(t, err)
	require.Equal(t, int64(113), price)
	require.Equal(t, int64(113), svc.Price())
}

func TestRedeem_SecondAttemptAlwaysRejected(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()
	_, err := svc.Redeem(ctx, "M&M")
	require.NoError(t, err)

	for _, code := range []string{"M&M", "m&m", "nope"} {
		price, err := svc.Redeem(ctx, code)
		require.ErrorIs(t, err, ErrAlreadyUsed)
		require.Equal(t, MessageAlreadyUsed, Message(err))
		require.Equal(t, int64(113), price, "discount must not stack")
	}
}

func TestRedeem_WrongCodeLeavesPromoAvailable(t *testing.T) {
	svc := newTestService(t, kv.NewMemory())
	ctx := context.Background()

	_, err := svc.Redeem(ctx, "MM")
	require.ErrorIs(t, err, ErrInvalidCode)
	require.Equal(t, MessageInvalid, Message(err))
	redeemed, err := svc.Redeem(ctx, "M&M")
	require.NoError(t, err)
	require.Equal(t, int64(113), redeemed)
}

func TestRedeem_FlagSurvivesNewSession(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	_, err := newTestService(t, store).Redeem(ctx, "M&M")
	require.NoError(t, err)

	next := newTestService(t, store)
	require.Equal(t, int64(125), next.Price(), "a new session starts from the base price")
	used, err := next.Redeemed(ctx)
	require.NoError(t, err)
	require.True(t, used)
	_, err = next.Redeem(ctx, "M&M")
	require.ErrorIs(t, err, ErrAlreadyUsed)
}
