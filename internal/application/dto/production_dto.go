package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionMaterialRequest material consumido. UnitCost nil = costo promedio vigente.
type ProductionMaterialRequest struct {
	ProductID    string           `json:"product_id"`
	QuantityUsed decimal.Decimal  `json:"quantity_used"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
}

// CreateProductionRequest body para POST /api/production (y /preview).
type CreateProductionRequest struct {
	Name            string                      `json:"name"`
	EmployeeID      string                      `json:"employee_id,omitempty"`
	OutputProductID string                      `json:"output_product_id"`
	OutputQuantity  decimal.Decimal             `json:"output_quantity"`
	AdditionalCosts decimal.Decimal             `json:"additional_costs"`
	Materials       []ProductionMaterialRequest `json:"materials"`
	Date            string                      `json:"date,omitempty"`
	Notes           string                      `json:"notes,omitempty"`
}

// CostBreakdownResponse desglose de costos (redondeado a 2 decimales).
type CostBreakdownResponse struct {
	MaterialsCost   decimal.Decimal `json:"materials_cost"`
	AdditionalCosts decimal.Decimal `json:"additional_costs"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
}

// CreateProductionResponse salida de POST /api/production.
type CreateProductionResponse struct {
	ID        string                `json:"id"`
	Breakdown CostBreakdownResponse `json:"breakdown"`
}

// MaterialAvailability disponibilidad de un material en la vista previa.
type MaterialAvailability struct {
	ProductID string          `json:"product_id"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Cost      decimal.Decimal `json:"cost"`
	Enough    bool            `json:"enough"`
}

// ProductionPreviewResponse salida de POST /api/production/preview.
type ProductionPreviewResponse struct {
	Breakdown      CostBreakdownResponse  `json:"breakdown"`
	Materials      []MaterialAvailability `json:"materials"`
	MaterialsValid bool                   `json:"materials_valid"`
}

// ProductionMaterialResponse renglón de material de una operación.
type ProductionMaterialResponse struct {
	ProductID    string          `json:"product_id"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Cost         decimal.Decimal `json:"cost"`
}

// ProductionResponse salida de una operación de producción.
type ProductionResponse struct {
	ID              string                       `json:"id"`
	Name            string                       `json:"name"`
	EmployeeID      string                       `json:"employee_id,omitempty"`
	OutputProductID string                       `json:"output_product_id"`
	OutputQuantity  decimal.Decimal              `json:"output_quantity"`
	OutputCost      decimal.Decimal              `json:"output_cost"`
	AdditionalCosts decimal.Decimal              `json:"additional_costs"`
	CostPerUnit     decimal.Decimal              `json:"cost_per_unit"`
	Date            string                       `json:"date"`
	Notes           string                       `json:"notes,omitempty"`
	Materials       []ProductionMaterialResponse `json:"materials,omitempty"`
	CreatedAt       time.Time                    `json:"created_at"`
}

// DeleteProductionResponse salida de DELETE /api/production/:id.
// Warning no vacío indica que el stock del producto de salida era menor que lo producido.
type DeleteProductionResponse struct {
	Success           bool            `json:"success"`
	Message           string          `json:"message"`
	MaterialsReturned int             `json:"materials_returned"`
	OutputRemoved     decimal.Decimal `json:"output_removed"`
	Warning           string          `json:"warning,omitempty"`
}
