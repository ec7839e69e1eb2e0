package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Create devuelve domain.ErrDuplicate si el nombre ya existe en la empresa.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Category, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Category, error)
	Delete(ctx context.Context, companyID, id string) error
}

// UnitRepository define el puerto de persistencia para Unit, con la misma semántica que CategoryRepository.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Unit, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Unit, error)
	Delete(ctx context.Context, companyID, id string) error
}
