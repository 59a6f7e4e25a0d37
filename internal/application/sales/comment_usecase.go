package sales

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

const maxCommentLen = 2000

// CommentUseCase comentarios libres sobre una venta.
type CommentUseCase struct {
	saleRepo    repository.SaleRepository
	commentRepo repository.CommentRepository
	now         func() time.Time
}

func NewCommentUseCase(saleRepo repository.SaleRepository, commentRepo repository.CommentRepository) *CommentUseCase {
	return &CommentUseCase{saleRepo: saleRepo, commentRepo: commentRepo, now: time.Now}
}

// AddComment agrega un comentario; no toca ninguna máquina de estado.
func (uc *CommentUseCase) AddComment(ctx context.Context, saleID int64, authorID, body string) (*entity.Comment, error) {
	body = strings.TrimSpace(body)
	authorID = strings.TrimSpace(authorID)
	verr := &domain.ValidationError{}
	if authorID == "" {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "actor_id", Reason: "requerido"})
	}
	if body == "" {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "body", Reason: "requerido"})
	} else if utf8.RuneCountInString(body) > maxCommentLen {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "body", Reason: "excede 2000 caracteres"})
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	if err := uc.ensureSale(ctx, saleID); err != nil {
		return nil, err
	}
	c := &entity.Comment{
		SaleID:    saleID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.commentRepo.Create(ctx, c); err != nil {
		return nil, domain.Persistence("crear comentario", err)
	}
	return c, nil
}

// ListComments comentarios de la venta en orden de alta.
func (uc *CommentUseCase) ListComments(ctx context.Context, saleID int64) ([]*entity.Comment, error) {
	if err := uc.ensureSale(ctx, saleID); err != nil {
		return nil, err
	}
	list, err := uc.commentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, domain.Persistence("listar comentarios", err)
	}
	return list, nil
}

func (uc *CommentUseCase) ensureSale(ctx context.Context, saleID int64) error {
	if saleID <= 0 {
		return domain.NewValidationError("id", "debe ser positivo")
	}
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return domain.Persistence("leer venta", err)
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return nil
}
