package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChipType tipo de chip vendido.
type ChipType string

const (
	ChipFisico ChipType = "FISICO"
	ChipESIM   ChipType = "ESIM"
)

// IsValid informa si t es un tipo de chip conocido.
func (t ChipType) IsValid() bool {
	return t == ChipFisico || t == ChipESIM
}

// RequiresShipment informa si el chip necesita entrega física.
func (t ChipType) RequiresShipment() bool {
	return t == ChipFisico
}

// Sale venta de telecomunicaciones. Inmutable una vez creada: los precios quedan fijados
// y el estado actual se deriva de los historiales, no se guarda en la venta.
type Sale struct {
	ID              int64
	ClientID        string
	PlanID          string
	PromotionID     string // vacío si no hubo promoción
	ChipType        ChipType
	Kind            SaleKind
	BasePrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	FinalPrice      decimal.Decimal
	ReferenceCode   string
	CreatedBy       string
	CreatedAt       time.Time

	Variant  ProductVariant
	Shipment *Shipment // nil para eSIM
}

// HasLogistics informa si la venta tiene máquina logística.
func (s *Sale) HasLogistics() bool {
	return s.Shipment != nil
}
