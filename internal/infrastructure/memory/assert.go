package memory

import (
	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository       = (*CompanyRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.ProductionRepository    = (*ProductionRepo)(nil)
	_ repository.EmployeeRepository      = (*EmployeeRepo)(nil)
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.UnitRepository          = (*UnitRepo)(nil)
	_ repository.ExpenseRepository       = (*ExpenseRepo)(nil)
	_ appinv.TxRunner                    = (*TxRunner)(nil)
)
