package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// MinorUnitPlaces decimales de la unidad monetaria mínima (centavos).
const MinorUnitPlaces = 2

var hundred = decimal.NewFromInt(100)

// ComputePrice calcula el precio final fijado en la venta (servicio de dominio, puro).
// PrecioFinal = round(PrecioBase × (1 − Descuento/100)), redondeo half-up a centavos.
// Sin promoción el descuento es 0.
func ComputePrice(basePrice, discountPercent decimal.Decimal) (decimal.Decimal, error) {
	if !basePrice.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidPricingInput
	}
	if discountPercent.LessThan(decimal.Zero) || discountPercent.GreaterThan(hundred) {
		return decimal.Zero, domain.ErrInvalidPricingInput
	}
	factor := hundred.Sub(discountPercent).Div(hundred)
	// basePrice > 0 y factor >= 0: Round (half away from zero) coincide con half-up.
	return basePrice.Mul(factor).Round(MinorUnitPlaces), nil
}
