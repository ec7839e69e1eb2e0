package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"` // in | out
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"` // solo entradas; 0 = sin precio
	EmployeeID string          `json:"employee_id,omitempty"`
	Date       string          `json:"date,omitempty"` // AAAA-MM-DD, vacío = hoy
	Notes      string          `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	EmployeeID   string          `json:"employee_id,omitempty"`
	ProductionID string          `json:"production_id,omitempty"`
	Date         string          `json:"date"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
