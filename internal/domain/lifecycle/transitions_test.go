package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/lifecycle"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla completa: cada estado tiene entrada explícita y apunta solo a estados válidos
// ──────────────────────────────────────────────────────────────────────────────

func TestTablaComercial_Exhaustiva(t *testing.T) {
	terminals := map[entity.CommercialState]bool{
		entity.CommercialActivado:  true,
		entity.CommercialCancelado: true,
		entity.CommercialRechazado: true,
	}
	for _, s := range entity.CommercialStates {
		next := lifecycle.AllowedNext(entity.MachineCommercial, string(s))
		if terminals[s] {
			assert.Empty(t, next, "%s es terminal", s)
			assert.True(t, lifecycle.IsTerminal(entity.MachineCommercial, string(s)))
			continue
		}
		assert.NotEmpty(t, next, "%s debe tener sucesores", s)
		for _, n := range next {
			assert.True(t, entity.CommercialState(n).IsValid(), "%s -> %s apunta a estado desconocido", s, n)
			assert.NotEqual(t, string(s), n, "%s no puede ser sucesor de sí mismo", s)
			assert.NotEqual(t, string(entity.CommercialInicial), n, "INICIAL solo se alcanza al sembrar")
		}
	}
}

func TestTablaLogistica_Exhaustiva(t *testing.T) {
	terminals := map[entity.LogisticsState]bool{
		entity.LogisticsEntregado: true,
		entity.LogisticsDevuelto:  true,
	}
	for _, s := range entity.LogisticsStates {
		next := lifecycle.AllowedNext(entity.MachineLogistics, string(s))
		if terminals[s] {
			assert.Empty(t, next, "%s es terminal", s)
			continue
		}
		assert.NotEmpty(t, next, "%s debe tener sucesores", s)
		for _, n := range next {
			assert.True(t, entity.LogisticsState(n).IsValid())
			assert.NotEqual(t, string(s), n)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Legalidad de aristas puntuales
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition(t *testing.T) {
	cases := []struct {
		machine entity.Machine
		from    string
		to      string
		want    bool
	}{
		{entity.MachineCommercial, "INICIAL", "EN_PROCESO", true},
		{entity.MachineCommercial, "INICIAL", "ACTIVADO", false},
		{entity.MachineCommercial, "EN_PROCESO", "APROBADO", true},
		{entity.MachineCommercial, "APROBADO", "ACTIVADO", true},
		{entity.MachineCommercial, "ACTIVADO", "ACTIVADO", false},
		{entity.MachineCommercial, "EN_PROCESO", "EN_PROCESO", false},
		{entity.MachineCommercial, "CANCELADO", "EN_PROCESO", false},
		{entity.MachineCommercial, "DESCONOCIDO", "EN_PROCESO", false},
		{entity.MachineLogistics, "ASIGNADO", "DESPACHADO", true},
		{entity.MachineLogistics, "ASIGNADO", "ENTREGADO", false},
		{entity.MachineLogistics, "NO_ENTREGADO", "EN_TRANSITO", true},
		{entity.MachineLogistics, "ENTREGADO", "DEVUELTO", false},
		// Los estados de una máquina no son válidos en la otra.
		{entity.MachineLogistics, "INICIAL", "EN_PROCESO", false},
		{entity.MachineCommercial, "ASIGNADO", "DESPACHADO", false},
	}
	for _, tc := range cases {
		got := lifecycle.CanTransition(tc.machine, tc.from, tc.to)
		assert.Equal(t, tc.want, got, "%s: %s -> %s", tc.machine, tc.from, tc.to)
	}
}

func TestInitialState(t *testing.T) {
	assert.Equal(t, "INICIAL", lifecycle.InitialState(entity.MachineCommercial))
	assert.Equal(t, "ASIGNADO", lifecycle.InitialState(entity.MachineLogistics))
	assert.Equal(t, "", lifecycle.InitialState(entity.Machine("OTRA")))
}

func TestIsState(t *testing.T) {
	assert.True(t, lifecycle.IsState(entity.MachineCommercial, "PENDIENTE_DOCUMENTACION"))
	assert.False(t, lifecycle.IsState(entity.MachineCommercial, "ENTREGADO"))
	assert.True(t, lifecycle.IsState(entity.MachineLogistics, "NO_ENTREGADO"))
	assert.False(t, lifecycle.IsState(entity.MachineLogistics, "en_transito"), "los estados distinguen mayúsculas")
}
