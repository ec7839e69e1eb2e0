package inventory

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ApplyToProduct bloquea el producto (SELECT FOR UPDATE), aplica la cantidad con signo según
// inventory.ApplyMovement y persiste stock y costo en una sola escritura.
// Debe llamarse con repositorios atados a una transacción.
func ApplyToProduct(
	ctx context.Context,
	products repository.ProductRepository,
	companyID, productID string,
	signedQty, unitCost decimal.Decimal,
) (*entity.Product, error) {
	p, err := products.GetForUpdate(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	next, err := inventory.ApplyMovement(
		inventory.LedgerState{Stock: p.CurrentStock, AvgCost: p.AvgCost},
		signedQty, unitCost,
	)
	if err != nil {
		var shortage *domain.StockShortageError
		if errors.As(err, &shortage) {
			shortage.ProductID = p.ID
		}
		return nil, err
	}
	if err := products.UpdateStock(ctx, p.ID, next.Stock, next.AvgCost); err != nil {
		return nil, err
	}
	p.CurrentStock = next.Stock
	p.AvgCost = next.AvgCost
	return p, nil
}
