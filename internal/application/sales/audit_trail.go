package sales

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// AuditTrailRecorder agrega entradas inmutables al historial de una venta.
// No expone actualización ni borrado.
type AuditTrailRecorder struct {
	now func() time.Time
}

// NewAuditTrailRecorder construye el recorder con el reloj del sistema.
func NewAuditTrailRecorder() *AuditTrailRecorder {
	return &AuditTrailRecorder{now: time.Now}
}

// SetClock reemplaza el reloj (tests).
func (r *AuditTrailRecorder) SetClock(now func() time.Time) {
	r.now = now
}

// Append lee la cabeza del stream (saleID, machine) con bloqueo y agrega la entrada siguiente.
// hist debe estar atado a la transacción del llamador; ante error el llamador hace rollback.
func (r *AuditTrailRecorder) Append(
	ctx context.Context,
	hist repository.HistoryRepository,
	saleID int64,
	machine entity.Machine,
	state, description, actorID string,
) (*entity.StatusEntry, error) {
	head, err := hist.Latest(ctx, saleID, machine, true)
	if err != nil {
		return nil, domain.Persistence("leer cabeza del historial", err)
	}
	return r.appendAfter(ctx, hist, head, saleID, machine, state, description, actorID)
}

// appendAfter agrega la entrada con seq = head.Seq+1 (1 si head es nil). Si otro escritor
// ya ocupó ese seq el repositorio devuelve ErrConcurrentTransition (compare-and-swap).
func (r *AuditTrailRecorder) appendAfter(
	ctx context.Context,
	hist repository.HistoryRepository,
	head *entity.StatusEntry,
	saleID int64,
	machine entity.Machine,
	state, description, actorID string,
) (*entity.StatusEntry, error) {
	if saleID <= 0 || !machine.IsValid() || state == "" {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.NewValidationError("actor_id", "requerido")
	}

	entry := &entity.StatusEntry{
		SaleID:      saleID,
		Machine:     machine,
		Seq:         1,
		State:       state,
		Description: strings.TrimSpace(description),
		ActorID:     actorID,
		CreatedAt:   r.now().UTC().Truncate(time.Microsecond),
	}
	if head != nil {
		entry.Seq = head.Seq + 1
		// Timestamps estrictamente crecientes aunque el reloj del escritor esté atrasado.
		if floor := head.CreatedAt.Add(time.Microsecond); entry.CreatedAt.Before(floor) {
			entry.CreatedAt = floor
		}
	}
	if err := hist.Append(ctx, entry); err != nil {
		return nil, domain.Persistence("agregar entrada de historial", err)
	}
	return entry, nil
}
