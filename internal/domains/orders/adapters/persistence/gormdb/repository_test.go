package gormdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/choufli-storefront/internal/platform/database"
	"github.com/Apurer/choufli-storefront/internal/platform/migrations"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(context.Background(), database.Config{SQLitePath: filepath.Join(t.TempDir(), "orders.db")})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRepository_SQLite(t *testing.T) {
	exerciseRepository(t, NewRepository(setupSQLite(t)))
}

func TestRepository_SQLiteStoresItemsAsJSON(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db)
	_, err := repo.Create(context.Background(), newOrder(t, ""))
	require.NoError(t, err)

	var raw string
	require.NoError(t, db.Raw("SELECT items_json FROM orders LIMIT 1").Scan(&raw).Error)
	require.JSONEq(t, `[{"name":"Robe A","price":120,"size":"S"},{"name":"Robe B","price":95,"size":"M"}]`, raw)
}

func TestRepository_NotConfigured(t *testing.T) {
	var repo *Repository
	_, err := repo.ListRecent(context.Background(), 1)
	require.Error(t, err)
}
