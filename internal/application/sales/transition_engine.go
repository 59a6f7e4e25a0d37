package sales

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/lifecycle"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// TransitionInput pedido de cambio de estado sobre una máquina de una venta.
type TransitionInput struct {
	SaleID      int64
	Machine     entity.Machine
	State       string
	Description string
	ActorID     string
}

// StatusTransitionEngine valida transiciones contra la tabla de cada máquina y las
// registra en el historial. Es el único camino para escribir historiales.
type StatusTransitionEngine struct {
	txRunner SalesTxRunner
	recorder *AuditTrailRecorder
	log      *logger.Logger
}

// NewStatusTransitionEngine construye el motor de transiciones.
func NewStatusTransitionEngine(txRunner SalesTxRunner, recorder *AuditTrailRecorder, log *logger.Logger) *StatusTransitionEngine {
	if log == nil {
		log = logger.Nop()
	}
	return &StatusTransitionEngine{txRunner: txRunner, recorder: recorder, log: log}
}

// Transition aplica in.State sobre la máquina indicada. La lectura del estado actual y el
// alta de la entrada ocurren en la misma transacción con la cabeza del stream bloqueada:
// de dos transiciones concurrentes desde el mismo estado, a lo sumo una se confirma.
// En PostgreSQL la que esperó el lock lee la cabeza anterior y su alta choca con la nueva:
// recibe ErrConcurrentTransition. Un reintento con la misma entrada ve la cabeza nueva y
// recibe ErrInvalidTransition si el destino ya no es alcanzable. Una transición que llega
// después del commit recibe directamente ErrInvalidTransition.
func (e *StatusTransitionEngine) Transition(ctx context.Context, in TransitionInput) (*entity.StatusEntry, error) {
	if err := validateTransitionInput(in); err != nil {
		return nil, err
	}

	var (
		entry *entity.StatusEntry
		from  string
	)
	err := e.txRunner.RunSales(ctx, func(repos SalesRepos) error {
		sale, err := repos.Sales.GetByID(ctx, in.SaleID)
		if err != nil {
			return domain.Persistence("leer venta", err)
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if in.Machine == entity.MachineLogistics && !sale.HasLogistics() {
			return domain.ErrLogisticsNotApplicable
		}
		head, err := repos.History.Latest(ctx, in.SaleID, in.Machine, true)
		if err != nil {
			return domain.Persistence("leer estado actual", err)
		}
		if head != nil {
			from = head.State
		}
		entry, err = e.applyAfter(ctx, repos.History, head, in)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrConcurrentTransition) {
			e.log.Info().
				Int64("sale_id", in.SaleID).
				Str("machine", string(in.Machine)).
				Str("from", from).
				Str("to", in.State).
				Err(err).
				Msg("transición rechazada")
		}
		return nil, err
	}

	e.log.Info().
		Int64("sale_id", in.SaleID).
		Str("machine", string(in.Machine)).
		Int64("seq", entry.Seq).
		Str("from", from).
		Str("to", entry.State).
		Str("actor_id", entry.ActorID).
		Msg("transición aplicada")
	return entry, nil
}

// applyAfter valida head -> in.State y agrega la entrada. head nil significa máquina sin
// inicializar: solo la creación de la venta puede sembrarla.
func (e *StatusTransitionEngine) applyAfter(
	ctx context.Context,
	hist repository.HistoryRepository,
	head *entity.StatusEntry,
	in TransitionInput,
) (*entity.StatusEntry, error) {
	if head == nil {
		return nil, &domain.InvalidTransitionError{Machine: string(in.Machine), To: in.State}
	}
	if !lifecycle.CanTransition(in.Machine, head.State, in.State) {
		return nil, &domain.InvalidTransitionError{Machine: string(in.Machine), From: head.State, To: in.State}
	}
	return e.recorder.appendAfter(ctx, hist, head, in.SaleID, in.Machine, in.State, in.Description, in.ActorID)
}

// seed escribe el estado inicial de una máquina vacía. Solo lo usa la creación de ventas,
// dentro de su propia transacción.
func (e *StatusTransitionEngine) seed(
	ctx context.Context,
	hist repository.HistoryRepository,
	saleID int64,
	machine entity.Machine,
	description, actorID string,
) (*entity.StatusEntry, error) {
	initial := lifecycle.InitialState(machine)
	head, err := hist.Latest(ctx, saleID, machine, true)
	if err != nil {
		return nil, domain.Persistence("leer historial", err)
	}
	if head != nil {
		return nil, &domain.InvalidTransitionError{Machine: string(machine), From: head.State, To: initial}
	}
	return e.recorder.appendAfter(ctx, hist, nil, saleID, machine, initial, description, actorID)
}

func validateTransitionInput(in TransitionInput) error {
	verr := &domain.ValidationError{}
	if in.SaleID <= 0 {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "sale_id", Reason: "debe ser positivo"})
	}
	if !in.Machine.IsValid() {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "machine", Reason: "máquina desconocida"})
	} else if !lifecycle.IsState(in.Machine, in.State) {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "state", Reason: "estado desconocido para la máquina " + string(in.Machine)})
	}
	if strings.TrimSpace(in.ActorID) == "" {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "actor_id", Reason: "requerido"})
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "description", Reason: "excede 500 caracteres"})
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

const maxDescriptionLen = 500
