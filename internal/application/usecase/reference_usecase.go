package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// EmployeeUseCase alta, listado y baja de empleados.
type EmployeeUseCase struct {
	repo        repository.EmployeeRepository
	invalidator appinv.Invalidator
}

// NewEmployeeUseCase construye el caso de uso. invalidator puede ser nil.
func NewEmployeeUseCase(repo repository.EmployeeRepository, invalidator appinv.Invalidator) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, invalidator: appinv.OrNoop(invalidator)}
}

func (uc *EmployeeUseCase) Create(ctx context.Context, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	if in.HourlyRate.IsNegative() {
		return nil, domain.Invalid("hourly_rate", "no puede ser negativo")
	}
	e := &entity.Employee{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       name,
		Position:   in.Position,
		HourlyRate: in.HourlyRate.Round(2),
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

func (uc *EmployeeUseCase) List(ctx context.Context, companyID string) ([]*dto.EmployeeResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// Delete elimina al empleado; sus movimientos y operaciones quedan sin empleado asignado,
// por eso se invalida el resumen (muestra los últimos movimientos).
func (uc *EmployeeUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		HourlyRate: e.HourlyRate,
		CreatedAt:  e.CreatedAt,
	}
}

// ExpenseUseCase registro de gastos.
type ExpenseUseCase struct {
	repo        repository.ExpenseRepository
	invalidator appinv.Invalidator
}

// NewExpenseUseCase construye el caso de uso. invalidator puede ser nil.
func NewExpenseUseCase(repo repository.ExpenseRepository, invalidator appinv.Invalidator) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, invalidator: appinv.OrNoop(invalidator)}
}

func (uc *ExpenseUseCase) Create(ctx context.Context, companyID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, domain.Invalid("category", "es requerida")
	}
	// los montos se guardan con dos decimales; 0.001 quedaría en cero
	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, domain.Invalid("amount", "debe ser mayor que cero")
	}
	date, err := dto.ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if date.IsZero() {
		date = now
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Category:    category,
		Amount:      amount,
		Description: in.Description,
		Date:        entity.DateOf(date),
		CreatedAt:   now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return toExpenseResponse(e), nil
}

// List devuelve los gastos del período (from/to AAAA-MM-DD, opcionales).
func (uc *ExpenseUseCase) List(ctx context.Context, companyID, from, to string) ([]*dto.ExpenseResponse, error) {
	fromDate, err := dto.ParseOptionalDate("from", from)
	if err != nil {
		return nil, err
	}
	toDate, err := dto.ParseOptionalDate("to", to)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

func (uc *ExpenseUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, companyID)
	return nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        dto.FormatDate(e.Date),
		CreatedAt:   e.CreatedAt,
	}
}
