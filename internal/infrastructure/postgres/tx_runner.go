package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
)

var _ sales.SalesTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSales inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un error de fn se devuelve tal cual; fallas de begin/commit se reportan como persistencia,
// salvo conflictos de serialización que se reportan como ErrConcurrentTransition.
func (r *TxRunner) RunSales(ctx context.Context, fn func(repos sales.SalesRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Persistence("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := sales.SalesRepos{
		Clients:  NewClientRepository(tx),
		Sales:    NewSaleRepository(tx),
		History:  NewHistoryRepository(tx),
		Comments: NewCommentRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapHistoryError("commit transaction", err)
	}
	return nil
}
