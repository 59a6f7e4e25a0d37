package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale, su variante y su envío.
// No existe Update ni Delete: la venta es inmutable y se cancela por estado.
type SaleRepository interface {
	// Create inserta la venta y asigna ID. Un reference_code repetido devuelve domain.ErrDuplicateReferenceCode.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateVariant(ctx context.Context, saleID int64, variant entity.ProductVariant) error
	CreateShipment(ctx context.Context, shipment *entity.Shipment) error
	// GetByID devuelve la venta con variante y envío, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
}
