package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductionRepository define el puerto de persistencia para operaciones de producción
// y sus materiales.
type ProductionRepository interface {
	// Create persiste la operación y cada elemento de op.Materials.
	Create(ctx context.Context, op *entity.ProductionOperation) error
	// GetByID devuelve la operación con sus materiales, o (nil, nil) si no existe.
	GetByID(ctx context.Context, companyID, id string) (*entity.ProductionOperation, error)
	// List devuelve operaciones sin materiales, fecha desc.
	List(ctx context.Context, companyID string, from, to *time.Time) ([]*entity.ProductionOperation, error)
	CountByOutputProduct(ctx context.Context, companyID, productID string) (int, error)
	// Delete elimina la operación y sus materiales.
	Delete(ctx context.Context, id string) error
}
