package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CatalogRepository lectura del catálogo de planes, promociones y empresas de origen.
// Todos devuelven (nil, nil) si el ID no existe.
type CatalogRepository interface {
	GetPlan(ctx context.Context, id string) (*entity.Plan, error)
	GetPromotion(ctx context.Context, id string) (*entity.Promotion, error)
	GetOriginCompany(ctx context.Context, id string) (*entity.OriginCompany, error)
}
