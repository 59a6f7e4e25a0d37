package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, first_name, last_name, document_type, document_number, email, phone, created_at`

// Create persiste un nuevo cliente. Si el documento ya existe (alta concurrente desde otra
// venta) no falla y deja en c.ID el ID existente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO client (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT ` + constraintClientDocument + ` DO NOTHING
		RETURNING id`
	var id string
	err := r.q.QueryRow(ctx, query,
		c.ID, c.FirstName, c.LastName, c.DocumentType, c.DocumentNumber, c.Email, c.Phone, c.CreatedAt,
	).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("insert client: %w", err)
	}
	existing, err := r.GetByDocument(ctx, c.DocumentType, c.DocumentNumber)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("insert client: conflicto de documento sin fila visible")
	}
	c.ID = existing.ID
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM client WHERE id::text = $1`, id)
}

// GetByDocument obtiene un cliente por tipo y número de documento (ya normalizados).
func (r *ClientRepo) GetByDocument(ctx context.Context, documentType, documentNumber string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM client WHERE document_type = $1 AND document_number = $2`,
		documentType, documentNumber)
}

func (r *ClientRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.DocumentType, &c.DocumentNumber, &c.Email, &c.Phone, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}
