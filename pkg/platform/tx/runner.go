package tx

import (
	"context"
	"database/sql"
	"time"

	dErrors "redart/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

// Runner scopes a ledger mutation and its event to one unit of work.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopRunner runs fn directly. In-memory stores are atomic per call.
type NoopRunner struct{}

func (NoopRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// SQLRunner opens a Postgres transaction and places it in the context so
// every store and the outbox join it.
type SQLRunner struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLRunner creates a runner. A zero timeout uses the default.
func NewSQLRunner(db *sql.DB, timeout time.Duration) *SQLRunner {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &SQLRunner{db: db, timeout: timeout}
}

func (r *SQLRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return Run(ctx, r.db, fn)
}
