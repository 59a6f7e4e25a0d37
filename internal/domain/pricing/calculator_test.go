package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputePrice_CasosConocidos(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		discount string
		want     string
	}{
		{"descuento 25", "1000", "25", "750"},
		{"sin promoción", "999", "0", "999"},
		{"escenario portabilidad", "900.00", "20", "720.00"},
		{"descuento total", "500", "100", "0"},
		{"redondeo half-up", "0.05", "50", "0.03"},
		{"redondeo a centavos", "10.01", "33", "6.71"},
		{"descuento decimal", "1234.56", "12.5", "1080.24"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pricing.ComputePrice(d(tc.base), d(tc.discount))
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tc.want)), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestComputePrice_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		discount string
	}{
		{"precio cero", "0", "10"},
		{"precio negativo", "-1", "0"},
		{"descuento negativo", "100", "-0.01"},
		{"descuento mayor a cien", "100", "100.01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.ComputePrice(d(tc.base), d(tc.discount))
			assert.ErrorIs(t, err, domain.ErrInvalidPricingInput)
		})
	}
}

// El resultado queda fijado en la venta: mismas entradas, mismo precio.
func TestComputePrice_Determinista(t *testing.T) {
	a, err1 := pricing.ComputePrice(d("777.77"), d("17"))
	b, err2 := pricing.ComputePrice(d("777.77"), d("17"))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, a.Equal(b))
	assert.Equal(t, int32(-2), a.Exponent(), "el precio se expresa en centavos")
}
