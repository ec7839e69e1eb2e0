// Package report arma los datos de los reportes descargables (hoja de costos de
// producción en PDF y existencias en XLSX) y delega el formato en los renderers.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductionSheet datos de una operación de producción con los nombres ya resueltos.
type ProductionSheet struct {
	CompanyName     string
	OperationID     string
	Name            string
	Date            time.Time
	EmployeeName    string
	OutputProduct   string
	OutputUnit      string
	OutputQuantity  decimal.Decimal
	MaterialsCost   decimal.Decimal
	AdditionalCosts decimal.Decimal
	TotalCost       decimal.Decimal
	CostPerUnit     decimal.Decimal
	Notes           string
	Materials       []SheetMaterial
}

// SheetMaterial una línea de material de la hoja de costos.
type SheetMaterial struct {
	Product     string
	Unit        string
	Quantity    decimal.Decimal
	CostPerUnit decimal.Decimal
	Cost        decimal.Decimal
}

// StockLine una fila del reporte de existencias.
type StockLine struct {
	Name       string
	Category   string
	Unit       string
	Stock      decimal.Decimal
	MinStock   decimal.Decimal
	AvgCost    decimal.Decimal
	StockValue decimal.Decimal
	LowStock   bool
}

// ProductionSheetRenderer genera el PDF de la hoja de costos.
type ProductionSheetRenderer interface {
	RenderProductionSheet(ctx context.Context, sheet *ProductionSheet) ([]byte, error)
}

// StockWorkbookRenderer genera el libro XLSX de existencias.
type StockWorkbookRenderer interface {
	RenderStockWorkbook(ctx context.Context, companyName string, lines []StockLine) ([]byte, error)
}
