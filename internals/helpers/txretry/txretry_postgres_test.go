package txretry

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const bumpOccupancy = "UPDATE rooms SET room_current_occupancy = room_current_occupancy + 1 WHERE room_id = ?"

func setupMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRunRetriesPostgresSerializationFailure(t *testing.T) {
	db, mock := setupMockPostgres(t)
	r := New(db, nil, 3, nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms").
		WithArgs("room-1").
		WillReturnError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms").
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	attempts := 0
	err := r.Run(context.Background(), []string{"room:room-1"}, func(tx *gorm.DB) error {
		attempts++
		return tx.Exec(bumpOccupancy, "room-1").Error
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDoesNotRetryUniqueViolation(t *testing.T) {
	db, mock := setupMockPostgres(t)
	r := New(db, nil, 3, nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms").
		WithArgs("room-2").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	attempts := 0
	err := r.Run(context.Background(), nil, func(tx *gorm.DB) error {
		attempts++
		return tx.Exec(bumpOccupancy, "room-2").Error
	})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
