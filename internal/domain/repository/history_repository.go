package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// HistoryRepository historiales comercial y logístico, solo-agregar.
type HistoryRepository interface {
	// Latest devuelve la entrada de mayor seq o (nil, nil) si el stream está vacío.
	// Con lock=true bloquea la cabeza del stream hasta el fin de la transacción (SELECT FOR UPDATE).
	Latest(ctx context.Context, saleID int64, machine entity.Machine, lock bool) (*entity.StatusEntry, error)
	// Append inserta la entrada con el Seq ya asignado. Un (sale_id, seq) repetido
	// devuelve domain.ErrConcurrentTransition.
	Append(ctx context.Context, entry *entity.StatusEntry) error
	// List devuelve el stream ordenado por seq ascendente.
	List(ctx context.Context, saleID int64, machine entity.Machine) ([]*entity.StatusEntry, error)
}
