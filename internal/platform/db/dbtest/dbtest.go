// Package dbtest provides an in-memory SQLite database for repository tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"emergy_api/internal/platform/db"
)

// Open prepares an in-memory SQLite database with foreign keys enforced
// and migrates the given models in order.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), db.GormConfig())
	require.NoError(t, err, "failed to initialize test database")

	// every pooled connection to :memory: would get its own empty database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		require.NoError(t, gdb.AutoMigrate(models...), "failed to migrate tables")
	}
	return gdb
}
