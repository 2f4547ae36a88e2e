package application

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	"github.com/Apurer/choufli-storefront/internal/platform/kv"
)

type recordingPresenter struct {
	views   []domain.View
	focused int
}

func (p *recordingPresenter) Present(_ context.Context, view domain.View) {
	p.views = append(p.views, view)
}

func (p *recordingPresenter) FocusCart(context.Context) {
	p.focused++
}

func (p *recordingPresenter) last() domain.View {
	return p.views[len(p.views)-1]
}

func newTestSession(t *testing.T) (*Session, *Store, *recordingPresenter) {
	t.Helper()
	store := NewStore(kv.NewMemory(), nil)
	presenter := &recordingPresenter{}
	session := NewSession(context.Background(), store, WithPresenter(presenter), WithShippingFee(8))
	return session, store, presenter
}

func TestSession_AddTwiceThenRemoveFirst(t *testing.T) {
	session, store, presenter := newTestSession(t)
	ctx := context.Background()

	_, err := session.Add(ctx, domain.AddRequest{Name: "Robe A", Price: 120, Size: domain.SizeS})
	require.NoError(t, err)
	view, err := session.Add(ctx, domain.AddRequest{Name: "Robe A", Price: 120, Size: domain.SizeM})
	require.NoError(t, err)

	require.Len(t, session.Items(), 2)
	require.Equal(t, int64(240), view.Subtotal)
	require.Equal(t, int64(248), view.Total)
	require.Equal(t, 2, presenter.focused)

	view, err = session.Remove(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, domain.Cart{{Name: "Robe A", Price: 120, Size: domain.SizeM}}, session.Items())
	require.Equal(t, int64(120), view.Subtotal)
	require.Equal(t, view, presenter.last())
	require.Equal(t, session.Items(), store.Load(ctx))
}

func TestSession_AddDefaultsToSmall(t *testing.T) {
	session, _, _ := newTestSession(t)
	_, err := session.Add(context.Background(), domain.AddRequest{Name: "Robe A", Price: 120})
	require.NoError(t, err)
	require.Equal(t, domain.SizeS, session.Items()[0].Size)
}

func TestSession_AddRejectsInvalidRequest(t *testing.T) {
	session, store, presenter := newTestSession(t)
	_, err := session.Add(context.Background(), domain.AddRequest{Name: "Robe A", Price: -5})
	require.ErrorIs(t, err, ErrInvalidItem)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
	require.Empty(t, session.Items())
	require.Empty(t, store.Load(context.Background()))
	require.Empty(t, presenter.views)
}

func TestSession_RemoveSameIndexTwice(t *testing.T) {
	session, _, _ := newTestSession(t)
	ctx := context.Background()
	for _, name := range []string{"A", "B"} {
		_, err := session.Add(ctx, domain.AddRequest{Name: name, Price: 10})
		require.NoError(t, err)
	}

	_, err := session.Remove(ctx, 1)
	require.NoError(t, err)
	_, err = session.Remove(ctx, 1)
	require.NoError(t, err)

	require.Equal(t, domain.Cart{{Name: "A", Price: 10, Size: domain.SizeS}}, session.Items())
}

func TestSession_RemoveOutOfRangeIsNoop(t *testing.T) {
	session, store, _ := newTestSession(t)
	ctx := context.Background()
	_, err := session.Add(ctx, domain.AddRequest{Name: "A", Price: 10})
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 42} {
		view, err := session.Remove(ctx, index)
		require.NoError(t, err)
		require.Equal(t, 1, view.Count)
	}
	require.Len(t, store.Load(ctx), 1)
}

func TestSession_ChangeSize(t *testing.T) {
	session, store, presenter := newTestSession(t)
	ctx := context.Background()
	_, err := session.Add(ctx, domain.AddRequest{Name: "A", Price: 10})
	require.NoError(t, err)
	renders := len(presenter.views)

	require.NoError(t, session.ChangeSize(ctx, 0, domain.SizeL))
	require.Equal(t, domain.SizeL, session.Items()[0].Size)
	require.Equal(t, domain.SizeL, store.Load(ctx)[0].Size)
	require.Len(t, presenter.views, renders, "size change must not re-render")

	require.NoError(t, session.ChangeSize(ctx, 7, domain.SizeXL))
	require.Equal(t, domain.SizeL, session.Items()[0].Size)

	require.ErrorIs(t, session.ChangeSize(ctx, 0, "XXL"), ErrInvalidSize)
}

func TestSession_LoadsPersistedCart(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory(), nil)
	require.NoError(t, store.Save(ctx, domain.Cart{{Name: "Robe B", Price: 95, Size: domain.SizeXL}}))

	session := NewSession(ctx, store)
	require.Equal(t, domain.Cart{{Name: "Robe B", Price: 95, Size: domain.SizeXL}}, session.Items())
	require.Equal(t, domain.DefaultShippingFee, session.ShippingFee())
}

func TestSession_ClearEmptiesAndDisablesCheckout(t *testing.T) {
	session, store, presenter := newTestSession(t)
	ctx := context.Background()
	_, err := session.Add(ctx, domain.AddRequest{Name: "A", Price: 10})
	require.NoError(t, err)

	view, err := session.Clear(ctx)
	require.NoError(t, err)
	require.True(t, view.Empty)
	require.False(t, presenter.last().CheckoutEnabled)
	require.Empty(t, store.Load(ctx))
}

func TestSession_SaveFailureKeepsMemoryAndStorageAligned(t *testing.T) {
	ctx := context.Background()
	backing := &failingKV{Memory: kv.NewMemory()}
	store := NewStore(backing, nil)
	session := NewSession(ctx, store)
	_, err := session.Add(ctx, domain.AddRequest{Name: "A", Price: 10})
	require.NoError(t, err)

	backing.putErr = errors.New("quota exceeded")
	_, err = session.Add(ctx, domain.AddRequest{Name: "B", Price: 20})
	require.Error(t, err)
	_, err = session.Remove(ctx, 0)
	require.Error(t, err)

	backing.putErr = nil
	require.Equal(t, store.Load(ctx), session.Items())
	require.Len(t, session.Items(), 1)
}

func TestSession_StorageMirrorsMemoryAfterEveryOperation(t *testing.T) {
	session, store, _ := newTestSession(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	sizes := domain.Sizes()

	for step := 0; step < 300; step++ {
		switch rng.Intn(3) {
		case 0:
			_, err := session.Add(ctx, domain.AddRequest{Name: "Robe", Price: int64(rng.Intn(200)), Size: sizes[rng.Intn(len(sizes))]})
			require.NoError(t, err)
		case 1:
			_, err := session.Remove(ctx, rng.Intn(6)-1)
			require.NoError(t, err)
		case 2:
			require.NoError(t, session.ChangeSize(ctx, rng.Intn(6)-1, sizes[rng.Intn(len(sizes))]))
		}
		require.Equal(t, session.Items(), store.Load(ctx), "step %d", step)
	}
}
