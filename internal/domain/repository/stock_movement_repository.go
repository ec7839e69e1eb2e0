package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos. Campos vacíos o nil no filtran.
type MovementFilter struct {
	CompanyID string
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
// Los movimientos son inmutables: no hay Update.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List ordena por fecha desc y luego por created_at desc.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// DeleteByProduction elimina los movimientos emitidos por una operación de producción.
	DeleteByProduction(ctx context.Context, productionID string) (int, error)
}
