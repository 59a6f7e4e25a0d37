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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y asigna sale.ID.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sale (client_id, plan_id, promotion_id, chip_type, variant_kind,
			base_price, discount_percent, final_price, reference_code, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		sale.ClientID, sale.PlanID, nullIfEmpty(sale.PromotionID), sale.ChipType, sale.Kind,
		sale.BasePrice, sale.DiscountPercent, sale.FinalPrice, sale.ReferenceCode, sale.CreatedBy, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		if code, constraint := pgCode(err); code == codeUniqueViolation && constraint == constraintSaleReferenceCode {
			return domain.ErrDuplicateReferenceCode
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateVariant inserta la única variante de la venta.
func (r *SaleRepo) CreateVariant(ctx context.Context, saleID int64, variant entity.ProductVariant) error {
	var (
		donor, market, toPort, pin, assigned, target *string
	)
	switch v := variant.(type) {
	case entity.Portability:
		m := string(v.OriginMarket)
		donor, market, toPort, pin = &v.DonorCompanyID, &m, &v.NumberToPort, &v.PIN
	case entity.NewLine:
		assigned, target = &v.AssignedNumber, &v.TargetCompanyID
	default:
		return domain.ErrInvalidInput
	}
	query := `
		INSERT INTO product_variant (sale_id, kind, donor_company_id, origin_market, number_to_port, pin,
			assigned_number, target_company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query, saleID, variant.Kind(), donor, market, toPort, pin, assigned, target); err != nil {
		return fmt.Errorf("insert product_variant: %w", err)
	}
	return nil
}

// CreateShipment inserta el envío de la venta.
func (r *SaleRepo) CreateShipment(ctx context.Context, s *entity.Shipment) error {
	query := `
		INSERT INTO shipment (sale_id, street, number, floor_apartment, locality, province, postal_code,
			contact_name, contact_phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.SaleID, s.Street, s.Number, s.FloorApartment, s.Locality, s.Province, s.PostalCode,
		s.ContactName, s.ContactPhone, s.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con variante y envío.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	query := `
		SELECT s.id, s.client_id, s.plan_id, COALESCE(s.promotion_id::text, ''), s.chip_type, s.variant_kind,
			s.base_price, s.discount_percent, s.final_price, s.reference_code, s.created_by, s.created_at,
			v.donor_company_id::text, v.origin_market, v.number_to_port, v.pin, v.assigned_number, v.target_company_id::text,
			sh.sale_id, sh.street, sh.number, sh.floor_apartment, sh.locality, sh.province, sh.postal_code,
			sh.contact_name, sh.contact_phone, sh.notes
		FROM sale s
		JOIN product_variant v ON v.sale_id = s.id
		LEFT JOIN shipment sh ON sh.sale_id = s.id
		WHERE s.id = $1`
	var (
		s                                            entity.Sale
		donor, market, toPort, pin, assigned, target *string
		shipSaleID                                   *int64
		street, number, floor, locality, province    *string
		postal, contactName, contactPhone, notes     *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ClientID, &s.PlanID, &s.PromotionID, &s.ChipType, &s.Kind,
		&s.BasePrice, &s.DiscountPercent, &s.FinalPrice, &s.ReferenceCode, &s.CreatedBy, &s.CreatedAt,
		&donor, &market, &toPort, &pin, &assigned, &target,
		&shipSaleID, &street, &number, &floor, &locality, &province, &postal,
		&contactName, &contactPhone, &notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	switch s.Kind {
	case entity.KindPortability:
		s.Variant = entity.Portability{
			DonorCompanyID: deref(donor),
			OriginMarket:   entity.OriginMarket(deref(market)),
			NumberToPort:   deref(toPort),
			PIN:            deref(pin),
		}
	case entity.KindNewLine:
		s.Variant = entity.NewLine{AssignedNumber: deref(assigned), TargetCompanyID: deref(target)}
	}
	if shipSaleID != nil {
		s.Shipment = &entity.Shipment{
			SaleID:         *shipSaleID,
			Street:         deref(street),
			Number:         deref(number),
			FloorApartment: deref(floor),
			Locality:       deref(locality),
			Province:       deref(province),
			PostalCode:     deref(postal),
			ContactName:    deref(contactName),
			ContactPhone:   deref(contactPhone),
			Notes:          deref(notes),
		}
	}
	return &s, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
