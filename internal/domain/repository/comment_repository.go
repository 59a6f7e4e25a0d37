package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CommentRepository comentarios de una venta (solo-agregar).
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListBySale(ctx context.Context, saleID int64) ([]*entity.Comment, error)
}
