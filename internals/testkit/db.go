// Package testkit opens a migrated in-memory database for package tests.
package testkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "hostelhub_backend/internals/databases"
	"hostelhub_backend/internals/helpers/dbtime"
	"hostelhub_backend/internals/helpers/lockset"
	"hostelhub_backend/internals/helpers/txretry"
)

// Today is the fixed "today" tests run under.
var Today = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func Clock() dbtime.Clock { return dbtime.FixedClock(Today) }

// OpenDB returns a fresh in-memory sqlite DB. A single connection keeps the
// memory database alive and serializes writers, so code under test must use
// the tx it is handed inside transactions.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Runner wires a tx runner with its own lock set over db.
func Runner(db *gorm.DB) *txretry.Runner {
	return txretry.New(db, lockset.New(), 3, zap.NewNop())
}
