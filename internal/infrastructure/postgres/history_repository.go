package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historiales comercial y logístico. Cada máquina tiene su tabla; (sale_id, seq) es la PK.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

func historyTable(m entity.Machine) (string, error) {
	switch m {
	case entity.MachineCommercial:
		return "commercial_history", nil
	case entity.MachineLogistics:
		return "logistics_history", nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Latest devuelve la cabeza del stream. Con lock=true la fila queda bloqueada (FOR UPDATE)
// hasta el fin de la transacción: el resto de transiciones sobre la misma máquina espera.
func (r *HistoryRepo) Latest(ctx context.Context, saleID int64, machine entity.Machine, lock bool) (*entity.StatusEntry, error) {
	table, err := historyTable(machine)
	if err != nil {
		return nil, err
	}
	query := `SELECT sale_id, seq, state, description, actor_id, created_at FROM ` + table + `
		WHERE sale_id = $1 ORDER BY seq DESC LIMIT 1`
	if lock {
		query += ` FOR UPDATE`
	}
	e := entity.StatusEntry{Machine: machine}
	err = r.q.QueryRow(ctx, query, saleID).Scan(&e.SaleID, &e.Seq, &e.State, &e.Description, &e.ActorID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if lock {
			return nil, mapHistoryError("lock history head", err)
		}
		return nil, fmt.Errorf("get history head: %w", err)
	}
	return &e, nil
}

// Append inserta la entrada. Si otro escritor ya usó el mismo seq devuelve ErrConcurrentTransition.
func (r *HistoryRepo) Append(ctx context.Context, e *entity.StatusEntry) error {
	table, err := historyTable(e.Machine)
	if err != nil {
		return err
	}
	query := `INSERT INTO ` + table + ` (sale_id, seq, state, description, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, e.SaleID, e.Seq, e.State, e.Description, e.ActorID, e.CreatedAt); err != nil {
		return mapHistoryError("insert history entry", err)
	}
	return nil
}

// List devuelve el stream en orden de seq.
func (r *HistoryRepo) List(ctx context.Context, saleID int64, machine entity.Machine) ([]*entity.StatusEntry, error) {
	table, err := historyTable(machine)
	if err != nil {
		return nil, err
	}
	query := `SELECT sale_id, seq, state, description, actor_id, created_at FROM ` + table + `
		WHERE sale_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var list []*entity.StatusEntry
	for rows.Next() {
		e := entity.StatusEntry{Machine: machine}
		if err := rows.Scan(&e.SaleID, &e.Seq, &e.State, &e.Description, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
