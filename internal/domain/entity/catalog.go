package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OriginCompany empresa (operadora) a la que pertenecen planes y promociones.
type OriginCompany struct {
	ID     string
	Name   string
	Active bool
}

// Plan oferta comercial con precio base. Catálogo de solo lectura para el motor.
type Plan struct {
	ID        string
	CompanyID string
	Name      string
	BasePrice decimal.Decimal
	Active    bool
}

// Promotion descuento porcentual aplicable a planes de una empresa.
// PlanID vacío = aplica a cualquier plan de la empresa. ValidTo nil = sin vencimiento.
type Promotion struct {
	ID              string
	CompanyID       string
	PlanID          string
	Name            string
	DiscountPercent decimal.Decimal
	ValidFrom       time.Time
	ValidTo         *time.Time
	Active          bool
}

// ValidAt informa si la promoción está vigente en t.
func (p *Promotion) ValidAt(t time.Time) bool {
	if !p.Active || t.Before(p.ValidFrom) {
		return false
	}
	return p.ValidTo == nil || t.Before(*p.ValidTo)
}
