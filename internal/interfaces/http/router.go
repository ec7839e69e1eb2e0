package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Produccion-api/internal/application/analytics"
	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/report"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ProductionUC     *production.UseCase
	EmployeeUC       *usecase.EmployeeUseCase
	CatalogUC        *usecase.CatalogUseCase
	ExpenseUC        *usecase.ExpenseUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	ReportUC         *report.UseCase
	JWTSecret        string
	Logger           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	movements := protected.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, log)
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/", inventoryHandler.ListMovements)

	// /preview antes de /:id
	prod := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC, log)
	reportHandler := NewReportHandler(deps.ReportUC, log)
	prod.Post("/preview", productionHandler.Preview)
	prod.Post("/", productionHandler.Create)
	prod.Get("/", productionHandler.List)
	prod.Get("/:id/pdf", reportHandler.ProductionPDF)
	prod.Get("/:id", productionHandler.GetByID)
	prod.Delete("/:id", productionHandler.Delete)

	ref := NewReferenceHandler(deps.EmployeeUC, deps.CatalogUC, deps.ExpenseUC, log)
	employees := protected.Group("/employees")
	employees.Post("/", withCompany(ref.CreateEmployee))
	employees.Get("/", withCompany(ref.ListEmployees))
	employees.Delete("/:id", withCompany(ref.DeleteEmployee))

	categories := protected.Group("/categories")
	categories.Post("/", withCompany(ref.CreateCategory))
	categories.Get("/", withCompany(ref.ListCategories))
	categories.Delete("/:id", withCompany(ref.DeleteCategory))

	units := protected.Group("/units")
	units.Post("/", withCompany(ref.CreateUnit))
	units.Get("/", withCompany(ref.ListUnits))
	units.Delete("/:id", withCompany(ref.DeleteUnit))

	expenses := protected.Group("/expenses")
	expenses.Post("/", withCompany(ref.CreateExpense))
	expenses.Get("/", withCompany(ref.ListExpenses))
	expenses.Delete("/:id", withCompany(ref.DeleteExpense))

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	dashboard.Get("/overview", dashboardHandler.GetOverview)
	dashboard.Get("/analytics", dashboardHandler.GetAnalytics)

	reports := protected.Group("/reports")
	reports.Get("/stock.xlsx", reportHandler.StockXLSX)
}
