// Package txretry runs units of work inside a database transaction under the
// process lock set and retries them on serialization conflicts.
package txretry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostelhub_backend/internals/helpers/apperror"
	"hostelhub_backend/internals/helpers/lockset"
)

const DefaultMaxAttempts uint = 3

type Runner struct {
	DB          *gorm.DB
	Locks       *lockset.Set
	MaxAttempts uint
	Log         *zap.Logger
}

func New(db *gorm.DB, locks *lockset.Set, maxAttempts uint, log *zap.Logger) *Runner {
	if locks == nil {
		locks = lockset.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Runner{DB: db, Locks: locks, MaxAttempts: maxAttempts, Log: log}
}

// Run locks keys, executes fn in one transaction, and retries the whole
// unit while it fails with a retryable conflict.
func (r *Runner) Run(ctx context.Context, keys []string, fn func(tx *gorm.DB) error) error {
	return r.Retry(ctx, func() error {
		return r.InTx(ctx, keys, fn)
	})
}

// InTx is a single attempt: lock, transact, classify.
func (r *Runner) InTx(ctx context.Context, keys []string, fn func(tx *gorm.DB) error) error {
	unlock := r.Locks.Lock(keys...)
	defer unlock()
	return Classify(r.DB.WithContext(ctx).Transaction(fn))
}

// Retry re-invokes attempt on ConflictRetryable errors only. Everything else
// is returned as is on the first failure.
func (r *Runner) Retry(ctx context.Context, attempt func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 100 * time.Millisecond

	tries := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		tries++
		err := Classify(attempt())
		switch {
		case err == nil:
			return struct{}{}, nil
		case apperror.IsRetryable(err):
			r.Log.Debug("tx conflict, retrying", zap.Int("attempt", tries), zap.Error(err))
			return struct{}{}, err
		default:
			return struct{}{}, backoff.Permanent(err)
		}
	}, backoff.WithBackOff(b), backoff.WithMaxTries(r.MaxAttempts))

	if err != nil && apperror.IsRetryable(err) {
		r.Log.Warn("tx conflict, giving up", zap.Int("attempts", tries), zap.Error(err))
	}
	return err
}

// Classify maps driver-level serialization and lock failures to
// apperror.Conflict. Other errors pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return apperror.Conflict(err)
		}
		return err
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		if sqErr.Code == sqlite3.ErrBusy || sqErr.Code == sqlite3.ErrLocked {
			return apperror.Conflict(err)
		}
	}
	return err
}

// IsUniqueViolation reports a unique-constraint failure from any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
