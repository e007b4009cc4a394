package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"time"

	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when an optimistic counter update finds
// the row changed under it. The whole command is rolled back and re-run by
// the execution strategy, so one of two racing commenters wins and the
// other retries on fresh state.
var ErrVersionConflict = errors.New("optimistic version conflict")

type txKey struct{}

// WithTx returns a context carrying an open transaction. Nested dispatch
// sees it and joins instead of opening a second one.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext reports the transaction the current command runs in, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok
}

// Exec is what every DAL call goes through: the ambient transaction when
// one is open, the root context otherwise (queries, test setup).
func Exec(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return DB.WithContext(ctx)
}

// ExecutionStrategy re-runs a whole transactional block on transient
// infrastructure failure. The block must be safe to re-run from scratch,
// which holds because the rollback preceding a retry clears every pending
// change.
type ExecutionStrategy interface {
	Execute(ctx context.Context, op func(ctx context.Context) error) error
}

type retryStrategy struct {
	maxAttempts int
	backoff     time.Duration
}

// NewRetryStrategy builds the default bounded exponential-backoff strategy.
func NewRetryStrategy() ExecutionStrategy {
	return &retryStrategy{maxAttempts: constants.TxMaxAttempts, backoff: constants.TxRetryBackoff}
}

func (s *retryStrategy) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	delay := s.backoff
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == s.maxAttempts {
			break
		}
		hlog.CtxWarnf(ctx, "transient failure, retrying (attempt %d/%d): %v", attempt, s.maxAttempts, lastErr)
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}

// IsRetryable classifies transient infrastructure failures plus the
// optimistic version conflict. Handler/domain errors (errno values,
// duplicate keys) are not retryable: re-running a handler that already
// failed on business grounds would just fail again or duplicate effects.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrVersionConflict) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1205, 1213: // lock wait timeout, deadlock
			return true
		}
	}
	return false
}

// IsDuplicateKey reports a unique-constraint violation (MySQL 1062), which
// the like handler maps to "already liked" rather than a generic failure.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// joinRollbackErr keeps the handler's error primary when the rollback
// itself also fails. "Transaction already finished" results are benign
// (a failed commit or a canceled connection has already torn it down)
// and are ignored.
func joinRollbackErr(runErr, rbErr error) error {
	if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
		return errors.Wrapf(runErr, "rollback also failed: %v", rbErr)
	}
	return runErr
}

// TransactionMiddleware wraps every command dispatched on the bus.
//
// Nested dispatch (a command handler dispatching a sub-command) finds the
// open transaction in ctx and runs on it; the top-level frame owns commit
// and rollback, so a failure anywhere unwinds everything at once.
//
// The top-level frame runs inside the retry strategy: begin, run the
// continuation, commit; on any failure roll back and re-raise the original
// error. Only transient failures cause the strategy to re-run the block.
func TransactionMiddleware(strategy ExecutionStrategy) bus.Middleware {
	return func(next bus.CommandHandler) bus.CommandHandler {
		return func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			if _, ok := TxFromContext(ctx); ok {
				// Joined an outer command's transaction.
				return next(ctx, cmd)
			}

			var res interface{}
			err := strategy.Execute(ctx, func(ctx context.Context) error {
				tx := DB.WithContext(ctx).Begin()
				if tx.Error != nil {
					return errors.Wrapf(tx.Error, "begin transaction for %s failed", cmd.CommandName())
				}
				hlog.CtxInfof(ctx, "transaction begin, command=%s", cmd.CommandName())

				out, runErr := next(WithTx(ctx, tx), cmd)
				if runErr == nil {
					runErr = tx.Commit().Error
				}
				if runErr != nil {
					joined := joinRollbackErr(runErr, tx.Rollback().Error)
					if joined != runErr {
						hlog.CtxErrorf(ctx, "transaction rollback failed, command=%s: %v", cmd.CommandName(), joined)
					} else {
						hlog.CtxWarnf(ctx, "transaction rollback, command=%s: %v", cmd.CommandName(), runErr)
					}
					return joined
				}

				hlog.CtxInfof(ctx, "transaction commit, command=%s", cmd.CommandName())
				res = out
				return nil
			})
			return res, err
		}
	}
}
