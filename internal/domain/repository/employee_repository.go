package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Employee, error)
	// Delete devuelve domain.ErrNotFound si no existe en la empresa.
	Delete(ctx context.Context, companyID, id string) error
}
