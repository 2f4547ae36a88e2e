package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewItem_DefaultsSize(t *testing.T) {
	item, err := NewItem(AddRequest{Name: " Robe A ", Price: 120})
	require.NoError(t, err)
	require.Equal(t, Item{Name: "Robe A", Price: 120, Size: SizeS}, item)
}

func TestNewItem_Rejects(t *testing.T) {
	_, err := NewItem(AddRequest{Name: "", Price: 10})
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = NewItem(AddRequest{Name: "Robe A", Price: -1})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewItem(AddRequest{Name: "Robe A", Price: 1, Size: "XXL"})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize(" xl ")
	require.NoError(t, err)
	require.Equal(t, SizeXL, size)

	_, err = ParseSize("medium")
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestCart_WithoutShiftsPositions(t *testing.T) {
	cart := Cart{{Name: "A", Price: 1, Size: SizeS}, {Name: "B", Price: 2, Size: SizeM}, {Name: "C", Price: 3, Size: SizeL}}

	next, ok := cart.Without(1)
	require.True(t, ok)
	require.Equal(t, Cart{{Name: "A", Price: 1, Size: SizeS}, {Name: "C", Price: 3, Size: SizeL}}, next)
	require.Len(t, cart, 3, "original cart must not change")

	next, ok = next.Without(5)
	require.False(t, ok)
	require.Len(t, next, 2)

	_, ok = next.Without(-1)
	require.False(t, ok)
}

func TestCart_WithSize(t *testing.T) {
	cart := Cart{{Name: "A", Price: 1, Size: SizeS}}

	next, ok := cart.WithSize(0, SizeXL)
	require.True(t, ok)
	require.Equal(t, SizeXL, next[0].Size)
	require.Equal(t, SizeS, cart[0].Size)

	_, ok = cart.WithSize(3, SizeM)
	require.False(t, ok)
}

func TestCart_Total(t *testing.T) {
	require.Equal(t, int64(0), Cart{}.Total(8))
	require.Equal(t, int64(248), Cart{{Price: 120}, {Price: 120}}.Total(8))
}

func TestRender_EmptyCart(t *testing.T) {
	view := Render(nil, 8)
	require.True(t, view.Empty)
	require.Equal(t, EmptyCartMessage, view.EmptyMessage)
	require.Zero(t, view.Subtotal)
	require.Zero(t, view.Shipping)
	require.Zero(t, view.Total)
	require.Zero(t, view.Count)
	require.False(t, view.CheckoutEnabled)
	require.Empty(t, view.Rows)
	require.Equal(t, Currency, view.Currency)
}

func TestRender_NonEmptyCart(t *testing.T) {
	cart := Cart{{Name: "Robe A", Price: 120, Size: SizeS}, {Name: "Robe A", Price: 120, Size: SizeM}}
	view := Render(cart, 8)

	require.False(t, view.Empty)
	require.Equal(t, int64(240), view.Subtotal)
	require.Equal(t, int64(8), view.Shipping)
	require.Equal(t, view.Subtotal+view.Shipping, view.Total)
	require.Equal(t, 2, view.Count)
	require.True(t, view.CheckoutEnabled)
	require.Len(t, view.Rows, 2)
	require.Equal(t, 1, view.Rows[1].Index)
	require.Equal(t, SizeM, view.Rows[1].Size)
	require.Equal(t, Sizes(), view.Rows[0].SizeOptions)
}
