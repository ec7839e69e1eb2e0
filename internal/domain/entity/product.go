package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (materia prima, semielaborado o terminado).
// CurrentStock y AvgCost solo cambian vía movimientos de stock; AvgCost es promedio ponderado.
type Product struct {
	ID           string
	CompanyID    string
	Name         string
	CategoryID   string // vacío si no tiene categoría
	UnitID       string // vacío si no tiene unidad
	Description  string
	MinStock     decimal.Decimal
	CurrentStock decimal.Decimal
	AvgCost      decimal.Decimal
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockValue devuelve CurrentStock * AvgCost.
func (p *Product) StockValue() decimal.Decimal {
	return p.CurrentStock.Mul(p.AvgCost)
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStock)
}
