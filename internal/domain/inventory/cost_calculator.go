package inventory

import "github.com/shopspring/decimal"

// CostPrecision decimales con los que se persisten costos y montos.
const CostPrecision int32 = 2

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// RoundCost redondea un costo o monto a CostPrecision.
func RoundCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(CostPrecision)
}
