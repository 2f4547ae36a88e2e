package gormdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
)

func newOrder(t *testing.T, key string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(
		domain.Customer{Name: "Amel", Phone: "22000000", Address: "Sousse"},
		[]domain.LineItem{{Name: "Robe A", Price: 120, Size: "S"}, {Name: "Robe B", Price: 95, Size: "M"}},
		223,
		key,
	)
	require.NoError(t, err)
	return order
}

// exerciseRepository runs the behaviour every backend must share.
func exerciseRepository(t *testing.T, repo *Repository) {
	t.Helper()
	ctx := context.Background()

	saved, err := repo.Create(ctx, newOrder(t, "sub-1"))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, saved.SameContent(fetched))
	assert.Equal(t, "sub-1", fetched.SubmissionID)

	_, err = repo.Create(ctx, newOrder(t, "sub-1"))
	require.ErrorIs(t, err, ports.ErrDuplicateSubmission)

	bySubmission, err := repo.GetBySubmissionID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, bySubmission.ID)

	for i := 0; i < 2; i++ {
		_, err := repo.Create(ctx, newOrder(t, ""))
		require.NoError(t, err, "orders without a submission id never collide")
	}

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)
}
