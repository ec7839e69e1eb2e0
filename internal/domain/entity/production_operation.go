package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOperation convierte N materiales consumidos en un producto de salida.
// OutputCost = costo de materiales + AdditionalCosts.
type ProductionOperation struct {
	ID              string
	CompanyID       string
	Name            string
	EmployeeID      string // opcional
	OutputProductID string
	OutputQuantity  decimal.Decimal
	OutputCost      decimal.Decimal
	AdditionalCosts decimal.Decimal
	Date            time.Time
	Notes           string
	CreatedAt       time.Time

	Materials []ProductionMaterial
}

// ProductionMaterial material consumido por una operación, con el costo unitario al momento.
type ProductionMaterial struct {
	ID           string
	ProductionID string
	ProductID    string
	QuantityUsed decimal.Decimal
	CostPerUnit  decimal.Decimal
}

// Cost devuelve QuantityUsed * CostPerUnit.
func (m ProductionMaterial) Cost() decimal.Decimal {
	return m.QuantityUsed.Mul(m.CostPerUnit)
}
