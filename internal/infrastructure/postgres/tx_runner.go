package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Ante contención de bloqueos (lock_timeout, serialización, deadlock) reintenta la tx completa.
type TxRunner struct {
	pool           *pgxpool.Pool
	lockTimeout    time.Duration
	maxAttempts    int
	initialBackoff time.Duration
	log            *logger.Logger
}

// NewTxRunner construye el runner con el pool y la política de reintentos.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration, maxAttempts int, initialBackoff time.Duration, log *logger.Logger) *TxRunner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &TxRunner{
		pool:           pool,
		lockTimeout:    lockTimeout,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		log:            logger.OrNop(log),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	return runWithRetry(ctx, r.maxAttempts, r.initialBackoff, r.log, func() error {
		return r.attempt(ctx, fn)
	})
}

func (r *TxRunner) attempt(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET no admite parámetros; el valor es un entero controlado por configuración.
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	repos := inventory.TxRepos{
		Products:   NewProductRepository(tx),
		Movements:  NewMovementRepository(tx),
		Production: NewProductionRepository(tx),
		Employees:  NewEmployeeRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// runWithRetry ejecuta op hasta maxAttempts veces mientras falle por contención.
// Los demás errores se devuelven tal cual en el primer intento; agotados los intentos
// el error envuelve domain.ErrResourceBusy.
func runWithRetry(ctx context.Context, maxAttempts int, initial time.Duration, log *logger.Logger, op func() error) error {
	b := backoff.NewExponentialBackOff()
	if initial > 0 {
		b.InitialInterval = initial
		b.MaxInterval = 20 * initial
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op()
		if err != nil && !isRetryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(maxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Warn().Err(err).Dur("wait", wait).Msg("transacción en contención, reintentando")
		}),
	)
	if err != nil && isRetryable(err) {
		return fmt.Errorf("%w: %v", domain.ErrResourceBusy, err)
	}
	return err
}
