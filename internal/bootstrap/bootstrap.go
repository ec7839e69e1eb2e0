// Package bootstrap arma el grafo de dependencias (repositorios, casos de uso y handlers)
// sobre el backend de almacenamiento elegido.
package bootstrap

import (
	"github.com/jhoicas/Produccion-api/internal/application/analytics"
	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/report"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/export"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Produccion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// Backend repositorios y TxRunner de un mismo almacenamiento.
type Backend struct {
	TxRunner   inventory.TxRunner
	Companies  repository.CompanyRepository
	Users      repository.UserRepository
	Products   repository.ProductRepository
	Movements  repository.StockMovementRepository
	Production repository.ProductionRepository
	Employees  repository.EmployeeRepository
	Categories repository.CategoryRepository
	Units      repository.UnitRepository
	Expenses   repository.ExpenseRepository
}

// MemoryBackend backend en memoria (desarrollo y tests).
func MemoryBackend(st *memory.Store) Backend {
	return Backend{
		TxRunner:   st.TxRunner(),
		Companies:  st.Companies(),
		Users:      st.Users(),
		Products:   st.Products(),
		Movements:  st.Movements(),
		Production: st.Productions(),
		Employees:  st.Employees(),
		Categories: st.Categories(),
		Units:      st.Units(),
		Expenses:   st.Expenses(),
	}
}

// PostgresBackend backend PostgreSQL; q es el pool y tx el runner con reintentos.
func PostgresBackend(q postgres.Querier, tx *postgres.TxRunner) Backend {
	return Backend{
		TxRunner:   tx,
		Companies:  postgres.NewCompanyRepository(q),
		Users:      postgres.NewUserRepository(q),
		Products:   postgres.NewProductRepository(q),
		Movements:  postgres.NewMovementRepository(q),
		Production: postgres.NewProductionRepository(q),
		Employees:  postgres.NewEmployeeRepository(q),
		Categories: postgres.NewCategoryRepository(q),
		Units:      postgres.NewUnitRepository(q),
		Expenses:   postgres.NewExpenseRepository(q),
	}
}

// Cache caché del resumen del dashboard que también se invalida tras cada escritura.
type Cache interface {
	analytics.OverviewCache
	inventory.Invalidator
}

// Options parámetros que no vienen del backend.
type Options struct {
	JWT    auth.JWTConfig
	Cache  Cache // nil = sin caché
	Logger *logger.Logger
}

// RouterDeps construye los casos de uso y devuelve las dependencias del router.
func RouterDeps(b Backend, opts Options) httpRouter.RouterDeps {
	var (
		overview    analytics.OverviewCache
		invalidator inventory.Invalidator
	)
	if opts.Cache != nil {
		overview, invalidator = opts.Cache, opts.Cache
	}

	recorder := inventory.NewRegisterMovementUseCase(b.TxRunner, b.Movements, invalidator)
	catalogUC := usecase.NewCatalogUseCase(b.Categories, b.Units, b.Products, invalidator)

	return httpRouter.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(b.Users, b.Companies, catalogUC, opts.JWT),
		ProductUC:        usecase.NewProductUseCase(b.TxRunner, recorder, b.Products, b.Production, b.Categories, b.Units, invalidator),
		RegisterMovement: recorder,
		ProductionUC:     production.NewUseCase(b.TxRunner, recorder, b.Production, b.Products, invalidator, opts.Logger),
		EmployeeUC:       usecase.NewEmployeeUseCase(b.Employees, invalidator),
		CatalogUC:        catalogUC,
		ExpenseUC:        usecase.NewExpenseUseCase(b.Expenses, invalidator),
		DashboardUC: analytics.NewDashboardUseCase(analytics.Repos{
			Products:   b.Products,
			Movements:  b.Movements,
			Production: b.Production,
			Expenses:   b.Expenses,
			Employees:  b.Employees,
			Categories: b.Categories,
			Units:      b.Units,
		}, overview, opts.Logger),
		ReportUC: report.NewUseCase(report.Repos{
			Companies:  b.Companies,
			Products:   b.Products,
			Production: b.Production,
			Employees:  b.Employees,
			Categories: b.Categories,
			Units:      b.Units,
		}, infrapdf.NewMarotoPDFGenerator(), export.NewStockWorkbook()),
		JWTSecret: opts.JWT.Secret,
		Logger:    opts.Logger,
	}
}
