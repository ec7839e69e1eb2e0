package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

// LedgerState estado valorizado de un producto: stock actual y costo promedio.
type LedgerState struct {
	Stock   decimal.Decimal
	AvgCost decimal.Decimal
}

// ApplyMovement aplica una cantidad con signo al estado del producto.
//   - Entrada con costo > 0: recalcula el promedio ponderado (redondeado a CostPrecision).
//   - Entrada sin costo: suma stock, el promedio no cambia.
//   - Salida: resta stock, el promedio no cambia; si el stock quedaría negativo devuelve
//     *domain.StockShortageError y el estado original.
func ApplyMovement(state LedgerState, signedQty, unitCost decimal.Decimal) (LedgerState, error) {
	if signedQty.IsZero() {
		return state, domain.Invalid("quantity", "debe ser distinta de cero")
	}
	if unitCost.IsNegative() {
		return state, domain.Invalid("unit_cost", "no puede ser negativo")
	}

	if signedQty.IsNegative() {
		qty := signedQty.Neg()
		if state.Stock.LessThan(qty) {
			return state, &domain.StockShortageError{Available: state.Stock, Requested: qty}
		}
		return LedgerState{Stock: state.Stock.Sub(qty), AvgCost: state.AvgCost}, nil
	}

	next := LedgerState{Stock: state.Stock.Add(signedQty), AvgCost: state.AvgCost}
	if unitCost.IsPositive() {
		// Un stock previo negativo no debería existir; si existe, no aporta valor al promedio.
		prev := decimal.Max(state.Stock, decimal.Zero)
		next.AvgCost = RoundCost(CostCalculator(prev, state.AvgCost, signedQty, unitCost))
	}
	return next, nil
}

// RemovableQuantity devuelve cuánto se puede retirar de current sin quedar negativo
// y si hubo faltante respecto a requested.
func RemovableQuantity(current, requested decimal.Decimal) (removed decimal.Decimal, short bool) {
	if current.LessThan(requested) {
		return decimal.Max(current, decimal.Zero), true
	}
	return requested, false
}
