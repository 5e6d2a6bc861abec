// Package databasetest opens throwaway in-memory SQLite databases with the
// full schema and reference data, for tests of the packages above the store.
package databasetest

import (
	"context"
	"fmt"
	"testing"

	"lapak/internal/config"
	"lapak/internal/database"
	"lapak/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a migrated and seeded database private to the calling test.
// A single connection is used so the in-memory database lives as long as the
// pool and every transaction sees the same data.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.New().String())
	db, err := database.Open(config.DBConfig{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedReferenceData(context.Background(), repositories.NewGORMStore(db)))
	return db
}
