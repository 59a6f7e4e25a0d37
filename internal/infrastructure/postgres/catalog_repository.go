package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura de planes, promociones y empresas de origen.
// Los IDs se comparan como texto: un ID mal formado simplemente no existe.
type CatalogRepo struct {
	q Querier
}

func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func (r *CatalogRepo) GetPlan(ctx context.Context, id string) (*entity.Plan, error) {
	query := `SELECT id, company_id, name, base_price, active FROM plan WHERE id::text = $1`
	var p entity.Plan
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.CompanyID, &p.Name, &p.BasePrice, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepo) GetPromotion(ctx context.Context, id string) (*entity.Promotion, error) {
	query := `
		SELECT id, company_id, COALESCE(plan_id::text, ''), name, discount_percent, valid_from, valid_to, active
		FROM promotion WHERE id::text = $1`
	var p entity.Promotion
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.PlanID, &p.Name, &p.DiscountPercent, &p.ValidFrom, &p.ValidTo, &p.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepo) GetOriginCompany(ctx context.Context, id string) (*entity.OriginCompany, error) {
	query := `SELECT id, name, active FROM origin_company WHERE id::text = $1`
	var c entity.OriginCompany
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get origin company: %w", err)
	}
	return &c, nil
}

// UpsertCompany alta o actualización de una empresa de origen (carga del catálogo).
func (r *CatalogRepo) UpsertCompany(ctx context.Context, c entity.OriginCompany) error {
	query := `
		INSERT INTO origin_company (id, name, active) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, active = EXCLUDED.active`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Active); err != nil {
		return fmt.Errorf("upsert origin company: %w", err)
	}
	return nil
}

// UpsertPlan alta o actualización de un plan.
func (r *CatalogRepo) UpsertPlan(ctx context.Context, p entity.Plan) error {
	query := `
		INSERT INTO plan (id, company_id, name, base_price, active) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			company_id = EXCLUDED.company_id, name = EXCLUDED.name,
			base_price = EXCLUDED.base_price, active = EXCLUDED.active`
	if _, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.Name, p.BasePrice, p.Active); err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	return nil
}

// UpsertPromotion alta o actualización de una promoción. PlanID vacío = aplica a cualquier plan.
func (r *CatalogRepo) UpsertPromotion(ctx context.Context, p entity.Promotion) error {
	query := `
		INSERT INTO promotion (id, company_id, plan_id, name, discount_percent, valid_from, valid_to, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			company_id = EXCLUDED.company_id, plan_id = EXCLUDED.plan_id, name = EXCLUDED.name,
			discount_percent = EXCLUDED.discount_percent, valid_from = EXCLUDED.valid_from,
			valid_to = EXCLUDED.valid_to, active = EXCLUDED.active`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullIfEmpty(p.PlanID), p.Name, p.DiscountPercent, p.ValidFrom, p.ValidTo, p.Active,
	)
	if err != nil {
		return fmt.Errorf("upsert promotion: %w", err)
	}
	return nil
}
