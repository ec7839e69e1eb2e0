package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock > 0 se registra como un movimiento de entrada a InitialCost.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id,omitempty"`
	UnitID       string          `json:"unit_id,omitempty"`
	Description  string          `json:"description,omitempty"`
	MinStock     decimal.Decimal `json:"min_stock"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	InitialCost  decimal.Decimal `json:"initial_cost"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock ni costo).
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	CategoryID   *string          `json:"category_id"`
	UnitID       *string          `json:"unit_id"`
	Description  *string          `json:"description"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id,omitempty"`
	UnitID       string          `json:"unit_id,omitempty"`
	Description  string          `json:"description,omitempty"`
	MinStock     decimal.Decimal `json:"min_stock"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	StockValue   decimal.Decimal `json:"stock_value"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
