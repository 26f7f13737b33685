package txretry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostelhub_backend/internals/helpers/apperror"
)

type counter struct {
	ID    uint `gorm:"primaryKey"`
	Value int
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&counter{}))
	return db
}

func TestRetryStopsOnBusinessError(t *testing.T) {
	r := New(nil, nil, 3, nil)
	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return apperror.NotAssigned()
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotAssigned))
	assert.Equal(t, 1, calls)
}

func TestRetryIsBoundedOnConflicts(t *testing.T) {
	r := New(nil, nil, 3, nil)
	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return sqlite3.Error{Code: sqlite3.ErrBusy}
	})
	require.Error(t, err)
	assert.True(t, apperror.IsRetryable(err))
	assert.Equal(t, 3, calls)
}

func TestRetrySucceedsAfterTransientConflict(t *testing.T) {
	r := New(nil, nil, 3, nil)
	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRunRollsBackFailedUnit(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Create(&counter{ID: 1, Value: 1}).Error)
	r := New(db, nil, 3, nil)

	err := r.Run(context.Background(), []string{"counter:1"}, func(tx *gorm.DB) error {
		if err := tx.Model(&counter{}).Where("id = ?", 1).Update("value", 99).Error; err != nil {
			return err
		}
		return apperror.Invalid("nope")
	})
	require.Error(t, err)

	var c counter
	require.NoError(t, db.First(&c, 1).Error)
	assert.Equal(t, 1, c.Value)

	err = r.Run(context.Background(), []string{"counter:1"}, func(tx *gorm.DB) error {
		return tx.Model(&counter{}).Where("id = ?", 1).Update("value", 2).Error
	})
	require.NoError(t, err)
	require.NoError(t, db.First(&c, 1).Error)
	assert.Equal(t, 2, c.Value)
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.True(t, apperror.IsRetryable(Classify(fmt.Errorf("x: %w", &pgconn.PgError{Code: "40P01"}))))
	assert.True(t, apperror.IsRetryable(Classify(sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.False(t, apperror.IsRetryable(Classify(&pgconn.PgError{Code: "23505"})))
	assert.False(t, apperror.IsRetryable(Classify(errors.New("boom"))))

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, IsUniqueViolation(errors.New("x")))
}
