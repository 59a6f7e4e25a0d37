package entity

import "time"

// Machine identifica una de las dos máquinas de estado independientes de una venta.
type Machine string

const (
	MachineCommercial Machine = "COMERCIAL" // aprobación / activación
	MachineLogistics  Machine = "LOGISTICA" // despacho y entrega del chip físico
)

// IsValid informa si m es una máquina conocida.
func (m Machine) IsValid() bool {
	switch m {
	case MachineCommercial, MachineLogistics:
		return true
	default:
		return false
	}
}

// CommercialState estado comercial de una venta.
type CommercialState string

const (
	CommercialInicial                CommercialState = "INICIAL"
	CommercialEnProceso              CommercialState = "EN_PROCESO"
	CommercialPendienteDocumentacion CommercialState = "PENDIENTE_DOCUMENTACION"
	CommercialAprobado               CommercialState = "APROBADO"
	CommercialActivado               CommercialState = "ACTIVADO"
	CommercialRechazado              CommercialState = "RECHAZADO"
	CommercialCancelado              CommercialState = "CANCELADO"
)

// CommercialStates lista cerrada de estados comerciales, en orden de presentación.
var CommercialStates = []CommercialState{
	CommercialInicial,
	CommercialEnProceso,
	CommercialPendienteDocumentacion,
	CommercialAprobado,
	CommercialActivado,
	CommercialRechazado,
	CommercialCancelado,
}

// IsValid informa si s pertenece al conjunto cerrado de estados comerciales.
func (s CommercialState) IsValid() bool {
	switch s {
	case CommercialInicial, CommercialEnProceso, CommercialPendienteDocumentacion,
		CommercialAprobado, CommercialActivado, CommercialRechazado, CommercialCancelado:
		return true
	default:
		return false
	}
}

// LogisticsState estado logístico del envío de una venta.
type LogisticsState string

const (
	LogisticsAsignado    LogisticsState = "ASIGNADO"
	LogisticsDespachado  LogisticsState = "DESPACHADO"
	LogisticsEnTransito  LogisticsState = "EN_TRANSITO"
	LogisticsNoEntregado LogisticsState = "NO_ENTREGADO"
	LogisticsEntregado   LogisticsState = "ENTREGADO"
	LogisticsDevuelto    LogisticsState = "DEVUELTO"
)

// LogisticsStates lista cerrada de estados logísticos.
var LogisticsStates = []LogisticsState{
	LogisticsAsignado,
	LogisticsDespachado,
	LogisticsEnTransito,
	LogisticsNoEntregado,
	LogisticsEntregado,
	LogisticsDevuelto,
}

// IsValid informa si s pertenece al conjunto cerrado de estados logísticos.
func (s LogisticsState) IsValid() bool {
	switch s {
	case LogisticsAsignado, LogisticsDespachado, LogisticsEnTransito,
		LogisticsNoEntregado, LogisticsEntregado, LogisticsDevuelto:
		return true
	default:
		return false
	}
}

// StatusEntry entrada inmutable del historial de una máquina de estado.
// Seq es el orden autoritativo; CreatedAt es estrictamente creciente dentro del mismo stream.
type StatusEntry struct {
	SaleID      int64
	Machine     Machine
	Seq         int64
	State       string
	Description string
	ActorID     string
	CreatedAt   time.Time
}
