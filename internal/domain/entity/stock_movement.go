package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement representa un movimiento inmutable de inventario (entrada o salida).
// Quantity siempre es positiva; el signo lo da Type.
type StockMovement struct {
	ID           string
	CompanyID    string
	ProductID    string
	Type         string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal // solo significativo en entradas
	TotalCost    decimal.Decimal
	EmployeeID   string // opcional
	ProductionID string // vacío salvo movimientos emitidos por una operación de producción
	Date         time.Time
	Notes        string
	CreatedAt    time.Time
}

// SignedQuantity devuelve la cantidad con signo (+ entrada, - salida).
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Type == MovementTypeOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// DateOf trunca t a la fecha de negocio (medianoche UTC del mismo día calendario).
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
