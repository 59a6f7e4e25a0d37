package lifecycle

import (
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// Tabla de transiciones comerciales. Cada estado tiene entrada explícita;
// los terminales tienen conjunto vacío.
var commercialTransitions = map[entity.CommercialState][]entity.CommercialState{
	entity.CommercialInicial: {
		entity.CommercialEnProceso,
		entity.CommercialRechazado,
		entity.CommercialCancelado,
	},
	entity.CommercialEnProceso: {
		entity.CommercialPendienteDocumentacion,
		entity.CommercialAprobado,
		entity.CommercialRechazado,
		entity.CommercialCancelado,
	},
	entity.CommercialPendienteDocumentacion: {
		entity.CommercialEnProceso,
		entity.CommercialRechazado,
		entity.CommercialCancelado,
	},
	entity.CommercialAprobado: {
		entity.CommercialActivado,
		entity.CommercialCancelado,
	},
	entity.CommercialActivado:  {},
	entity.CommercialRechazado: {},
	entity.CommercialCancelado: {},
}

// Tabla de transiciones logísticas.
var logisticsTransitions = map[entity.LogisticsState][]entity.LogisticsState{
	entity.LogisticsAsignado: {
		entity.LogisticsDespachado,
		entity.LogisticsDevuelto,
	},
	entity.LogisticsDespachado: {
		entity.LogisticsEnTransito,
		entity.LogisticsDevuelto,
	},
	entity.LogisticsEnTransito: {
		entity.LogisticsEntregado,
		entity.LogisticsNoEntregado,
	},
	entity.LogisticsNoEntregado: {
		entity.LogisticsEnTransito,
		entity.LogisticsDevuelto,
	},
	entity.LogisticsEntregado: {},
	entity.LogisticsDevuelto:  {},
}

// InitialState estado con el que se siembra cada máquina al crear la venta.
func InitialState(m entity.Machine) string {
	switch m {
	case entity.MachineCommercial:
		return string(entity.CommercialInicial)
	case entity.MachineLogistics:
		return string(entity.LogisticsAsignado)
	default:
		return ""
	}
}

// IsState informa si state pertenece al conjunto cerrado de la máquina m.
func IsState(m entity.Machine, state string) bool {
	switch m {
	case entity.MachineCommercial:
		return entity.CommercialState(state).IsValid()
	case entity.MachineLogistics:
		return entity.LogisticsState(state).IsValid()
	default:
		return false
	}
}

// AllowedNext devuelve los sucesores legales de from en la máquina m.
// Un estado desconocido no tiene sucesores.
func AllowedNext(m entity.Machine, from string) []string {
	var out []string
	switch m {
	case entity.MachineCommercial:
		for _, s := range commercialTransitions[entity.CommercialState(from)] {
			out = append(out, string(s))
		}
	case entity.MachineLogistics:
		for _, s := range logisticsTransitions[entity.LogisticsState(from)] {
			out = append(out, string(s))
		}
	}
	return out
}

// CanTransition informa si from -> to es una arista de la tabla.
// Un estado nunca es sucesor de sí mismo, así que repetir el estado actual es inválido.
func CanTransition(m entity.Machine, from, to string) bool {
	for _, s := range AllowedNext(m, from) {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal informa si state no admite más transiciones.
func IsTerminal(m entity.Machine, state string) bool {
	return IsState(m, state) && len(AllowedNext(m, state)) == 0
}
