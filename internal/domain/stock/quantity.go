package stock

import "github.com/shopspring/decimal"

// QuantityScale decimales que se persisten en una cantidad (toneladas con precisión de kilo).
const QuantityScale = 3

// maxQuantity primer valor que no cabe en NUMERIC(14,3).
var maxQuantity = decimal.New(1, 14-QuantityScale)

// Representable indica si q se guarda sin redondeo: a lo sumo QuantityScale decimales
// y |q| < 10^11.
func Representable(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale)) && q.Abs().LessThan(maxQuantity)
}

// ValidQuantity cantidad de una builty, slip o movimiento: positiva y representable.
func ValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && Representable(q)
}
