package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

// MaterialLine cantidad consumida de un material y su costo unitario.
type MaterialLine struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// CostBreakdown desglose de costos de una operación de producción.
// CostPerUnit conserva la precisión completa; se redondea solo al presentarlo.
type CostBreakdown struct {
	MaterialsCost   decimal.Decimal
	AdditionalCosts decimal.Decimal
	TotalCost       decimal.Decimal
	CostPerUnit     decimal.Decimal
}

// ProductionCost calcula materiales + costos adicionales y el costo por unidad producida.
func ProductionCost(lines []MaterialLine, additionalCosts, outputQty decimal.Decimal) (CostBreakdown, error) {
	if !outputQty.IsPositive() {
		return CostBreakdown{}, domain.Invalid("output_quantity", "debe ser mayor que cero")
	}
	if additionalCosts.IsNegative() {
		return CostBreakdown{}, domain.Invalid("additional_costs", "no puede ser negativo")
	}
	materials := decimal.Zero
	for _, l := range lines {
		materials = materials.Add(l.Quantity.Mul(l.UnitCost))
	}
	materials = RoundCost(materials)
	total := RoundCost(materials.Add(additionalCosts))
	return CostBreakdown{
		MaterialsCost:   materials,
		AdditionalCosts: RoundCost(additionalCosts),
		TotalCost:       total,
		CostPerUnit:     total.Div(outputQty),
	}, nil
}
