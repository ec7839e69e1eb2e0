package dto

import "github.com/shopspring/decimal"

// DashboardOverviewDTO respuesta de GET /api/dashboard/overview.
type DashboardOverviewDTO struct {
	ProductCount        int                `json:"product_count"`
	InventoryValue      decimal.Decimal    `json:"inventory_value"`       // Σ stock * costo promedio
	ExpensesLast30Days  decimal.Decimal    `json:"expenses_last_30_days"` // gastos de los últimos 30 días
	ProductionLast30Day int                `json:"production_last_30_days"`
	InStock             []StockLineDTO     `json:"in_stock"`
	LowStock            []StockLineDTO     `json:"low_stock"`
	RecentMovements     []MovementResponse `json:"recent_movements"` // últimos 10 de la semana
}

// StockLineDTO renglón de existencias para listas del dashboard.
type StockLineDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Unit         string          `json:"unit,omitempty"`
	Category     string          `json:"category,omitempty"`
}

// DailyMovementDTO cantidad movida por día y tipo.
type DailyMovementDTO struct {
	Date     string          `json:"date"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
}

// EmployeeOutputDTO unidades producidas por empleado.
type EmployeeOutputDTO struct {
	EmployeeID string          `json:"employee_id,omitempty"`
	Name       string          `json:"name"`
	Output     decimal.Decimal `json:"output"`
}

// ExpenseByCategoryDTO total de gastos por categoría.
type ExpenseByCategoryDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ProductMarginDTO margen de un producto con costo y precio de venta.
type ProductMarginDTO struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	AvgCost       decimal.Decimal `json:"avg_cost"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// FinancialSummaryDTO resumen financiero del período.
type FinancialSummaryDTO struct {
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	ProductionCosts decimal.Decimal `json:"production_costs"`
}

// AnalyticsDTO respuesta de GET /api/dashboard/analytics.
type AnalyticsDTO struct {
	From               string                 `json:"from"`
	To                 string                 `json:"to"`
	MovementsByDay     []DailyMovementDTO     `json:"movements_by_day"`
	OutputByEmployee   []EmployeeOutputDTO    `json:"output_by_employee"`
	ExpensesByCategory []ExpenseByCategoryDTO `json:"expenses_by_category"`
	Margins            []ProductMarginDTO     `json:"margins"`
	Summary            FinancialSummaryDTO    `json:"summary"`
}
