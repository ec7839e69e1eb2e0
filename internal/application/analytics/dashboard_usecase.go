// Package analytics contiene los casos de uso del dashboard: resumen operativo y
// analítica del período (movimientos, producción, gastos y márgenes).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

const (
	overviewWindowDays  = 30 // gastos y producción del resumen
	recentMovementsDays = 7
	recentMovementsMax  = 10
	defaultPeriodDays   = 30 // período de analítica si no se indica from
)

// OverviewCache guarda el resumen por empresa. Un fallo de caché nunca rompe la consulta.
type OverviewCache interface {
	Get(ctx context.Context, companyID string) (*dto.DashboardOverviewDTO, bool, error)
	Set(ctx context.Context, companyID string, v *dto.DashboardOverviewDTO) error
}

// Repos puertos de lectura usados por el dashboard.
type Repos struct {
	Products   repository.ProductRepository
	Movements  repository.StockMovementRepository
	Production repository.ProductionRepository
	Expenses   repository.ExpenseRepository
	Employees  repository.EmployeeRepository
	Categories repository.CategoryRepository
	Units      repository.UnitRepository
}

// DashboardUseCase calcula el resumen y la analítica a partir de los repositorios.
type DashboardUseCase struct {
	repos Repos
	cache OverviewCache
	log   *logger.Logger
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache y log pueden ser nil.
func NewDashboardUseCase(repos Repos, cache OverviewCache, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, cache: cache, log: logger.OrNop(log), now: time.Now}
}

// Overview construye el resumen del dashboard. Las consultas se lanzan en paralelo:
//  1. productos (conteo, valor de inventario, en stock, stock bajo)
//  2. gastos de los últimos 30 días
//  3. operaciones de producción de los últimos 30 días
//  4. últimos 10 movimientos de la semana
//  5. unidades y categorías para etiquetar las listas
func (uc *DashboardUseCase) Overview(ctx context.Context, companyID string) (*dto.DashboardOverviewDTO, error) {
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, companyID)
		if err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("dashboard: lectura de caché fallida")
		} else if ok {
			return cached, nil
		}
	}

	today := entity.DateOf(uc.now())
	windowFrom := today.AddDate(0, 0, -overviewWindowDays)
	weekFrom := today.AddDate(0, 0, -recentMovementsDays)

	var (
		products   []*entity.Product
		expenses   []*entity.Expense
		ops        []*entity.ProductionOperation
		movements  []*entity.StockMovement
		units      []*entity.Unit
		categories []*entity.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.repos.Products.ListByCompany(gctx, companyID)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		expenses, err = uc.repos.Expenses.List(gctx, companyID, &windowFrom, &today)
		return wrap("gastos", err)
	})
	g.Go(func() (err error) {
		ops, err = uc.repos.Production.List(gctx, companyID, &windowFrom, &today)
		return wrap("producción", err)
	})
	g.Go(func() (err error) {
		movements, err = uc.repos.Movements.List(gctx, repository.MovementFilter{
			CompanyID: companyID, From: &weekFrom, To: &today, Limit: recentMovementsMax,
		})
		return wrap("movimientos", err)
	})
	g.Go(func() (err error) {
		units, err = uc.repos.Units.ListByCompany(gctx, companyID)
		return wrap("unidades", err)
	})
	g.Go(func() (err error) {
		categories, err = uc.repos.Categories.ListByCompany(gctx, companyID)
		return wrap("categorías", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unitNames := make(map[string]string, len(units))
	for _, u := range units {
		unitNames[u.ID] = u.ShortName
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	out := &dto.DashboardOverviewDTO{
		ProductCount:        len(products),
		InventoryValue:      decimal.Zero,
		ExpensesLast30Days:  decimal.Zero,
		ProductionLast30Day: len(ops),
		InStock:             []dto.StockLineDTO{},
		LowStock:            []dto.StockLineDTO{},
		RecentMovements:     make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, p := range products {
		out.InventoryValue = out.InventoryValue.Add(p.StockValue())
		line := dto.StockLineDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Unit:         unitNames[p.UnitID],
			Category:     categoryNames[p.CategoryID],
		}
		if p.CurrentStock.IsPositive() {
			out.InStock = append(out.InStock, line)
		}
		if p.IsLowStock() {
			out.LowStock = append(out.LowStock, line)
		}
	}
	out.InventoryValue = out.InventoryValue.Round(2)
	for _, e := range expenses {
		out.ExpensesLast30Days = out.ExpensesLast30Days.Add(e.Amount)
	}
	for _, m := range movements {
		out.RecentMovements = append(out.RecentMovements, appinv.MovementToResponse(m))
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, companyID, out); err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("dashboard: escritura de caché fallida")
		}
	}
	return out, nil
}

// Analytics calcula la analítica del período [from, to] (AAAA-MM-DD). to vacío = hoy;
// from vacío = 30 días antes de to.
func (uc *DashboardUseCase) Analytics(ctx context.Context, companyID, fromStr, toStr string) (*dto.AnalyticsDTO, error) {
	to, err := dto.ParseDate("to", toStr)
	if err != nil {
		return nil, err
	}
	if to.IsZero() {
		to = entity.DateOf(uc.now())
	}
	from, err := dto.ParseDate("from", fromStr)
	if err != nil {
		return nil, err
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -defaultPeriodDays)
	}
	if from.After(to) {
		return nil, invalidRange()
	}

	var (
		products  []*entity.Product
		movements []*entity.StockMovement
		ops       []*entity.ProductionOperation
		expenses  []*entity.Expense
		employees []*entity.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.repos.Products.ListByCompany(gctx, companyID)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		movements, err = uc.repos.Movements.List(gctx, repository.MovementFilter{CompanyID: companyID, From: &from, To: &to})
		return wrap("movimientos", err)
	})
	g.Go(func() (err error) {
		ops, err = uc.repos.Production.List(gctx, companyID, &from, &to)
		return wrap("producción", err)
	})
	g.Go(func() (err error) {
		expenses, err = uc.repos.Expenses.List(gctx, companyID, &from, &to)
		return wrap("gastos", err)
	})
	g.Go(func() (err error) {
		employees, err = uc.repos.Employees.ListByCompany(gctx, companyID)
		return wrap("empleados", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.AnalyticsDTO{
		From:               dto.FormatDate(from),
		To:                 dto.FormatDate(to),
		MovementsByDay:     movementsByDay(movements),
		OutputByEmployee:   outputByEmployee(ops, employees),
		ExpensesByCategory: expensesByCategory(expenses),
		Margins:            margins(products),
		Summary:            summary(products, ops, expenses),
	}, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
