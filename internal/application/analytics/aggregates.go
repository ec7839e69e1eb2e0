package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

const unassignedEmployee = "Sin asignar"

func invalidRange() error {
	return domain.Invalid("from", "debe ser anterior o igual a to")
}

// movementsByDay suma cantidades por fecha y tipo, en orden cronológico.
func movementsByDay(movements []*entity.StockMovement) []dto.DailyMovementDTO {
	type key struct{ date, typ string }
	totals := make(map[key]decimal.Decimal)
	for _, m := range movements {
		k := key{dto.FormatDate(m.Date), m.Type}
		totals[k] = totals[k].Add(m.Quantity)
	}
	out := make([]dto.DailyMovementDTO, 0, len(totals))
	for k, qty := range totals {
		out = append(out, dto.DailyMovementDTO{Date: k.date, Type: k.typ, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// outputByEmployee suma unidades producidas por empleado, de mayor a menor.
func outputByEmployee(ops []*entity.ProductionOperation, employees []*entity.Employee) []dto.EmployeeOutputDTO {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	totals := make(map[string]decimal.Decimal)
	for _, op := range ops {
		totals[op.EmployeeID] = totals[op.EmployeeID].Add(op.OutputQuantity)
	}
	out := make([]dto.EmployeeOutputDTO, 0, len(totals))
	for id, qty := range totals {
		name, ok := names[id]
		if !ok {
			name = unassignedEmployee
		}
		out = append(out, dto.EmployeeOutputDTO{EmployeeID: id, Name: name, Output: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Output.Cmp(out[j].Output); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func expensesByCategory(expenses []*entity.Expense) []dto.ExpenseByCategoryDTO {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	out := make([]dto.ExpenseByCategoryDTO, 0, len(totals))
	for c, amount := range totals {
		out = append(out, dto.ExpenseByCategoryDTO{Category: c, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// margins solo incluye productos con costo promedio y precio de venta positivos.
// margin_percent = margin / selling_price * 100.
func margins(products []*entity.Product) []dto.ProductMarginDTO {
	hundred := decimal.NewFromInt(100)
	out := make([]dto.ProductMarginDTO, 0)
	for _, p := range products {
		if !p.AvgCost.IsPositive() || !p.SellingPrice.IsPositive() {
			continue
		}
		margin := p.SellingPrice.Sub(p.AvgCost)
		out = append(out, dto.ProductMarginDTO{
			ProductID:     p.ID,
			Name:          p.Name,
			AvgCost:       p.AvgCost,
			SellingPrice:  p.SellingPrice,
			Margin:        margin.Round(2),
			MarginPercent: margin.Div(p.SellingPrice).Mul(hundred).Round(2),
		})
	}
	return out
}

func summary(products []*entity.Product, ops []*entity.ProductionOperation, expenses []*entity.Expense) dto.FinancialSummaryDTO {
	s := dto.FinancialSummaryDTO{TotalExpenses: decimal.Zero, InventoryValue: decimal.Zero, ProductionCosts: decimal.Zero}
	for _, e := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
	}
	for _, p := range products {
		s.InventoryValue = s.InventoryValue.Add(p.StockValue())
	}
	s.InventoryValue = s.InventoryValue.Round(2)
	for _, op := range ops {
		s.ProductionCosts = s.ProductionCosts.Add(op.OutputCost)
	}
	return s
}
