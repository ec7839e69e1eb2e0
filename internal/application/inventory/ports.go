package inventory

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products   repository.ProductRepository
	Movements  repository.StockMovementRepository
	Production repository.ProductionRepository
	Employees  repository.EmployeeRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error no queda ningún efecto.
// Las implementaciones reintentan ante contención de bloqueos y devuelven domain.ErrResourceBusy
// cuando se agotan los intentos.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// Invalidator recibe aviso después de cada escritura confirmada que cambia stock, costos o gastos.
type Invalidator interface {
	Invalidate(ctx context.Context, companyID string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}

// OrNoop devuelve inv o un Invalidator que no hace nada si es nil.
func OrNoop(inv Invalidator) Invalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}
