package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// ReferenceHandler maneja empleados, categorías, unidades y gastos (protegido).
type ReferenceHandler struct {
	employees *usecase.EmployeeUseCase
	catalog   *usecase.CatalogUseCase
	expenses  *usecase.ExpenseUseCase
	errorResponder
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(employees *usecase.EmployeeUseCase, catalog *usecase.CatalogUseCase, expenses *usecase.ExpenseUseCase, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{employees: employees, catalog: catalog, expenses: expenses, errorResponder: errorResponder{log: log}}
}

// withCompany resuelve company_id y delega; todas las rutas de este handler lo requieren.
func withCompany(fn func(c *fiber.Ctx, companyID string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return unauthorized(c)
		}
		return fn(c, companyID)
	}
}

// ── Empleados ─────────────────────────────────────────────────────────────────

// CreateEmployee POST /api/employees
func (h *ReferenceHandler) CreateEmployee(c *fiber.Ctx, companyID string) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Create(c.UserContext(), companyID, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmployees GET /api/employees
func (h *ReferenceHandler) ListEmployees(c *fiber.Ctx, companyID string) error {
	list, err := h.employees.List(c.UserContext(), companyID)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// DeleteEmployee DELETE /api/employees/:id. Movimientos y operaciones quedan sin empleado.
func (h *ReferenceHandler) DeleteEmployee(c *fiber.Ctx, companyID string) error {
	if err := h.employees.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Categorías y unidades ─────────────────────────────────────────────────────

// CreateCategory POST /api/categories
func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx, companyID string) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.catalog.CreateCategory(c.UserContext(), companyID, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories GET /api/categories (con conteo de productos y si se puede borrar)
func (h *ReferenceHandler) ListCategories(c *fiber.Ctx, companyID string) error {
	list, err := h.catalog.ListCategories(c.UserContext(), companyID)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// DeleteCategory DELETE /api/categories/:id. 409 si tiene productos.
func (h *ReferenceHandler) DeleteCategory(c *fiber.Ctx, companyID string) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), companyID, c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateUnit POST /api/units
func (h *ReferenceHandler) CreateUnit(c *fiber.Ctx, companyID string) error {
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.catalog.CreateUnit(c.UserContext(), companyID, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUnits GET /api/units
func (h *ReferenceHandler) ListUnits(c *fiber.Ctx, companyID string) error {
	list, err := h.catalog.ListUnits(c.UserContext(), companyID)
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// DeleteUnit DELETE /api/units/:id. 409 si tiene productos.
func (h *ReferenceHandler) DeleteUnit(c *fiber.Ctx, companyID string) error {
	if err := h.catalog.DeleteUnit(c.UserContext(), companyID, c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Gastos ────────────────────────────────────────────────────────────────────

// CreateExpense POST /api/expenses
func (h *ReferenceHandler) CreateExpense(c *fiber.Ctx, companyID string) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.expenses.Create(c.UserContext(), companyID, in)
	if err != nil {
		return h.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses GET /api/expenses?from=&to=
func (h *ReferenceHandler) ListExpenses(c *fiber.Ctx, companyID string) error {
	list, err := h.expenses.List(c.UserContext(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		return h.write(c, err)
	}
	return c.JSON(list)
}

// DeleteExpense DELETE /api/expenses/:id
func (h *ReferenceHandler) DeleteExpense(c *fiber.Ctx, companyID string) error {
	if err := h.expenses.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return h.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
