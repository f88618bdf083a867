package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "redart/pkg/domain-errors"
)

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("nil transaction leaves context untouched", func(t *testing.T) {
		got := WithTx(ctx, nil)
		_, ok := From(got)
		assert.False(t, ok)
	})

	t.Run("stored transaction is returned", func(t *testing.T) {
		sqlTx := &sql.Tx{}
		got, ok := From(WithTx(ctx, sqlTx))
		assert.True(t, ok)
		assert.Same(t, sqlTx, got)
	})
}

func TestRunReusesContextTransaction(t *testing.T) {
	ctx := WithTx(context.Background(), &sql.Tx{})
	called := false
	// db is nil: Run must not try to begin a new transaction.
	err := Run(ctx, nil, func(inner context.Context) error {
		called = true
		_, ok := From(inner)
		assert.True(t, ok)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestNoopRunner(t *testing.T) {
	err := NoopRunner{}.RunInTx(context.Background(), func(ctx context.Context) error {
		_, ok := From(ctx)
		assert.False(t, ok)
		return nil
	})
	assert.NoError(t, err)
}

func TestSQLRunnerRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewSQLRunner(nil, 0).RunInTx(ctx, func(context.Context) error {
		called = true
		return nil
	})

	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	assert.False(t, called)
}
