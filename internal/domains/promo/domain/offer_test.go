package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffer_Matches(t *testing.T) {
	offer, err := NewOffer("", DefaultDiscountPercent, 120)
	require.NoError(t, err)
	require.True(t, offer.Matches("m&m"))
	require.True(t, offer.Matches(" M&M "))
	require.False(t, offer.Matches("mm"))
}

func TestOffer_DiscountedPriceRoundsLikeMathRound(t *testing.T) {
	for base := int64(0); base <= 500; base++ {
		offer, err := NewOffer("M&M", 10, base)
		require.NoError(t, err)
		want := int64(math.Round(float64(base) * 0.9))
		require.Equal(t, want, offer.DiscountedPrice(), "base %d", base)
	}
}

func TestNewOffer_Validates(t *testing.T) {
	_, err := NewOffer("X", 120, 10)
	require.ErrorIs(t, err, ErrInvalidPercent)
	_, err = NewOffer("X", 10, -1)
	require.ErrorIs(t, err, ErrInvalidBase)
}
