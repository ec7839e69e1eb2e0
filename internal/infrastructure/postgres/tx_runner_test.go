package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

func pgErr(code string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, Message: "boom"})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(pgErr(codeLockNotAvailable)))
	assert.True(t, isRetryable(pgErr(codeSerializationFailure)))
	assert.True(t, isRetryable(pgErr(codeDeadlockDetected)))
	assert.False(t, isRetryable(pgErr(codeUniqueViolation)))
	assert.False(t, isRetryable(errors.New("plain")))
	assert.False(t, isRetryable(nil))
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, isUniqueViolation(pgErr(codeUniqueViolation)))
	assert.False(t, isUniqueViolation(pgErr(codeForeignKeyViolation)))
	assert.True(t, isForeignKeyViolation(pgErr(codeForeignKeyViolation)))
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", nullable("x"))
	s := "y"
	assert.Equal(t, "y", deref(&s))
	assert.Equal(t, "", deref(nil))
}

func TestRunWithRetry_SucceedsAfterContention(t *testing.T) {
	calls := 0
	err := runWithRetry(context.Background(), 3, time.Millisecond, logger.Nop(), func() error {
		calls++
		if calls < 3 {
			return pgErr(codeLockNotAvailable)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunWithRetry_ExhaustedIsResourceBusy(t *testing.T) {
	calls := 0
	err := runWithRetry(context.Background(), 3, time.Millisecond, logger.Nop(), func() error {
		calls++
		return pgErr(codeDeadlockDetected)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResourceBusy)
	assert.Equal(t, 3, calls)
}

func TestRunWithRetry_DomainErrorNotRetried(t *testing.T) {
	calls := 0
	shortage := &domain.StockShortageError{ProductID: "p1"}
	err := runWithRetry(context.Background(), 5, time.Millisecond, logger.Nop(), func() error {
		calls++
		return shortage
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrResourceBusy)
	assert.Equal(t, 1, calls)
}
