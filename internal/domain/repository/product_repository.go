package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas están acotadas por companyID; GetByID/GetForUpdate devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error)
	// Update modifica los datos de catálogo. No toca CurrentStock ni AvgCost.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock persiste stock y costo promedio (usado solo por el libro de inventario).
	UpdateStock(ctx context.Context, id string, stock, avgCost decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, companyID, categoryID string) (int, error)
	CountByUnit(ctx context.Context, companyID, unitID string) (int, error)
	// Delete elimina el producto junto con sus movimientos y renglones de materiales.
	Delete(ctx context.Context, companyID, id string) error
}
