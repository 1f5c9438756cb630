// Package money concentra la aritmética monetaria. Todos los montos usan decimal de precisión
// arbitraria; nunca float64.
package money

import "github.com/shopspring/decimal"

// LineTotal precio unitario × cantidad (exacto).
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Sum suma exacta; cero si no hay valores.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// PercentOf calcula base × rate / 100 redondeado HALF_UP a scale decimales.
// La división por 100 es un corrimiento exacto; solo se redondea al final.
func PercentOf(base, rate decimal.Decimal, scale int32) decimal.Decimal {
	return RoundHalfUp(base.Mul(rate).Shift(-2), scale)
}

// RoundHalfUp redondea la mitad lejos de cero (1.005 -> 1.01, -1.005 -> -1.01).
func RoundHalfUp(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.Round(scale)
}
