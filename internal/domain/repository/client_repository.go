package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ClientRepository puerto hacia el registro de clientes (búsqueda y alta).
type ClientRepository interface {
	// Create da de alta el cliente. Si otro alta concurrente ya registró el mismo documento,
	// no falla: deja en client.ID el ID existente.
	Create(ctx context.Context, client *entity.Client) error
	// GetByID y GetByDocument devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByDocument(ctx context.Context, documentType, documentNumber string) (*entity.Client, error)
}
