package sales

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SalesRepos repositorios atados a una misma transacción.
type SalesRepos struct {
	Clients  repository.ClientRepository
	Sales    repository.SaleRepository
	History  repository.HistoryRepository
	Comments repository.CommentRepository
}

// SalesTxRunner ejecuta fn dentro de una transacción; si fn retorna error se hace rollback
// y nada de lo escrito es visible para otros lectores.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(repos SalesRepos) error) error
}

// ReferenceCodeGenerator entrega candidatos a código de referencia externo (tipo SAP).
// La unicidad la garantiza la restricción única en almacenamiento.
type ReferenceCodeGenerator interface {
	Next(ctx context.Context) (string, error)
}

// ReservationState resultado de reservar un token de deduplicación.
type ReservationState int

const (
	// ReservationNew el token no existía; el llamador debe procesar la creación.
	ReservationNew ReservationState = iota
	// ReservationCompleted una creación previa con el mismo token terminó; SaleID la identifica.
	ReservationCompleted
	// ReservationPending otra solicitud con el mismo token sigue en proceso.
	ReservationPending
)

// Reservation estado de un token de deduplicación.
type Reservation struct {
	State  ReservationState
	SaleID int64
}

// IdempotencyStore persiste tokens de deduplicación de creación de ventas.
// Reserve devuelve domain.ErrIdempotencyMismatch si el token se usó con otra huella.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key, fingerprint string, ttl time.Duration) (Reservation, error)
	Complete(ctx context.Context, key, fingerprint string, saleID int64, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
