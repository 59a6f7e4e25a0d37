package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CreateSaleRequest body para POST /api/ventas.
// Client (datos en línea) y ClientID son excluyentes; Variant lleva exactamente una de sus ramas.
type CreateSaleRequest struct {
	ClientID    string           `json:"client_id,omitempty" validate:"omitempty,uuid,excluded_with=Client"`
	Client      *ClientRequest   `json:"client,omitempty" validate:"required_without=ClientID"`
	PlanID      string           `json:"plan_id" validate:"required,uuid"`
	PromotionID string           `json:"promotion_id,omitempty" validate:"omitempty,uuid"`
	ChipType    string           `json:"chip_type" validate:"required,oneof=FISICO ESIM"`
	Variant     VariantRequest   `json:"variant"`
	Shipment    *ShipmentRequest `json:"shipment,omitempty"`
	ActorID     string           `json:"actor_id,omitempty" validate:"omitempty,max=64"` // si no hay JWT
	DedupToken  string           `json:"dedup_token,omitempty" validate:"omitempty,max=128"`
}

// ClientRequest datos del cliente en línea; se busca por documento y se crea si no existe.
type ClientRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	DocumentType   string `json:"document_type" validate:"required,oneof=DNI CUIL CUIT PASAPORTE dni cuil cuit pasaporte"`
	DocumentNumber string `json:"document_number" validate:"required,max=20"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"required,max=30"`
}

// VariantRequest unión etiquetada: exactamente una de Portability o NewLine.
type VariantRequest struct {
	Portability *PortabilityRequest `json:"portability,omitempty" validate:"required_without=NewLine,excluded_with=NewLine"`
	NewLine     *NewLineRequest     `json:"new_line,omitempty" validate:"required_without=Portability"`
}

type PortabilityRequest struct {
	DonorCompanyID string `json:"donor_company_id" validate:"required,uuid"`
	OriginMarket   string `json:"origin_market" validate:"required,oneof=PREPAGO POSPAGO"`
	NumberToPort   string `json:"number_to_port" validate:"required,len=10,numeric"`
	PIN            string `json:"pin" validate:"required,len=4,numeric"`
}

type NewLineRequest struct {
	AssignedNumber  string `json:"assigned_number" validate:"required,len=10,numeric"`
	TargetCompanyID string `json:"target_company_id" validate:"required,uuid"`
}

// ShipmentRequest domicilio de entrega del chip físico.
type ShipmentRequest struct {
	Street         string `json:"street" validate:"required,max=120"`
	Number         string `json:"number" validate:"required,max=20"`
	FloorApartment string `json:"floor_apartment,omitempty" validate:"max=20"`
	Locality       string `json:"locality" validate:"required,max=80"`
	Province       string `json:"province" validate:"required,max=80"`
	PostalCode     string `json:"postal_code" validate:"required,max=10"`
	ContactName    string `json:"contact_name" validate:"required,max=120"`
	ContactPhone   string `json:"contact_phone" validate:"required,max=30"`
	Notes          string `json:"notes,omitempty" validate:"max=500"`
}

// ToVariant convierte la rama enviada en la variante de dominio (nil si no hay ninguna).
func (v VariantRequest) ToVariant() entity.ProductVariant {
	switch {
	case v.Portability != nil && v.NewLine == nil:
		return entity.Portability{
			DonorCompanyID: v.Portability.DonorCompanyID,
			OriginMarket:   entity.OriginMarket(v.Portability.OriginMarket),
			NumberToPort:   v.Portability.NumberToPort,
			PIN:            v.Portability.PIN,
		}
	case v.NewLine != nil && v.Portability == nil:
		return entity.NewLine{
			AssignedNumber:  v.NewLine.AssignedNumber,
			TargetCompanyID: v.NewLine.TargetCompanyID,
		}
	default:
		return nil
	}
}

// ToShipment convierte el domicilio; nil si no se envió.
func (s *ShipmentRequest) ToShipment() *entity.Shipment {
	if s == nil {
		return nil
	}
	return &entity.Shipment{
		Street:         s.Street,
		Number:         s.Number,
		FloorApartment: s.FloorApartment,
		Locality:       s.Locality,
		Province:       s.Province,
		PostalCode:     s.PostalCode,
		ContactName:    s.ContactName,
		ContactPhone:   s.ContactPhone,
		Notes:          s.Notes,
	}
}

// TransitionRequest body para PATCH /api/ventas/:id/estado y /logistica.
type TransitionRequest struct {
	State       string `json:"state" validate:"required,max=40"`
	Description string `json:"description,omitempty" validate:"max=500"`
	ActorID     string `json:"actor_id,omitempty" validate:"omitempty,max=64"`
}

// CommentRequest body para POST /api/ventas/:id/comentarios.
type CommentRequest struct {
	Body    string `json:"body" validate:"required,max=2000"`
	ActorID string `json:"actor_id,omitempty" validate:"omitempty,max=64"`
}

// SaleResponse venta en respuestas.
type SaleResponse struct {
	ID              int64            `json:"id"`
	ReferenceCode   string           `json:"reference_code"`
	ClientID        string           `json:"client_id"`
	ClientName      string           `json:"client_name,omitempty"`
	PlanID          string           `json:"plan_id"`
	PromotionID     string           `json:"promotion_id,omitempty"`
	ChipType        string           `json:"chip_type"`
	Kind            string           `json:"kind"`
	BasePrice       decimal.Decimal  `json:"base_price" swaggertype:"string"`
	DiscountPercent decimal.Decimal  `json:"discount_percent" swaggertype:"string"`
	FinalPrice      decimal.Decimal  `json:"final_price" swaggertype:"string"`
	CreatedBy       string           `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
	Variant         VariantResponse  `json:"variant"`
	Shipment        *ShipmentRequest `json:"shipment,omitempty"`
	CommercialState string           `json:"commercial_state,omitempty"`
	LogisticsState  string           `json:"logistics_state,omitempty"`
	History         *HistoryResponse `json:"history,omitempty"`
}

// VariantResponse variante; el PIN de portabilidad nunca se devuelve.
type VariantResponse struct {
	Kind            string `json:"kind"`
	DonorCompanyID  string `json:"donor_company_id,omitempty"`
	OriginMarket    string `json:"origin_market,omitempty"`
	NumberToPort    string `json:"number_to_port,omitempty"`
	AssignedNumber  string `json:"assigned_number,omitempty"`
	TargetCompanyID string `json:"target_company_id,omitempty"`
}

// StatusEntryResponse entrada de historial.
type StatusEntryResponse struct {
	Seq         int64     `json:"seq"`
	State       string    `json:"state"`
	Description string    `json:"description,omitempty"`
	ActorID     string    `json:"actor_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryResponse respuesta de GET /api/ventas/:id/historial.
type HistoryResponse struct {
	SaleID     int64                 `json:"sale_id"`
	Commercial []StatusEntryResponse `json:"commercial"`
	Logistics  []StatusEntryResponse `json:"logistics"`
}

// TransitionResponse entrada agregada por una transición.
type TransitionResponse struct {
	SaleID  int64               `json:"sale_id"`
	Machine string              `json:"machine"`
	Entry   StatusEntryResponse `json:"entry"`
}

// CommentResponse comentario en respuestas.
type CommentResponse struct {
	ID        int64     `json:"id"`
	SaleID    int64     `json:"sale_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSaleResponse arma la respuesta; client puede ser nil.
func NewSaleResponse(s *entity.Sale, client *entity.Client) SaleResponse {
	out := SaleResponse{
		ID:              s.ID,
		ReferenceCode:   s.ReferenceCode,
		ClientID:        s.ClientID,
		PlanID:          s.PlanID,
		PromotionID:     s.PromotionID,
		ChipType:        string(s.ChipType),
		Kind:            string(s.Kind),
		BasePrice:       s.BasePrice,
		DiscountPercent: s.DiscountPercent,
		FinalPrice:      s.FinalPrice,
		CreatedBy:       s.CreatedBy,
		CreatedAt:       s.CreatedAt,
		Variant:         VariantResponse{Kind: string(s.Kind)},
	}
	if client != nil {
		out.ClientName = client.FullName()
	}
	switch v := s.Variant.(type) {
	case entity.Portability:
		out.Variant.DonorCompanyID = v.DonorCompanyID
		out.Variant.OriginMarket = string(v.OriginMarket)
		out.Variant.NumberToPort = v.NumberToPort
	case entity.NewLine:
		out.Variant.AssignedNumber = v.AssignedNumber
		out.Variant.TargetCompanyID = v.TargetCompanyID
	}
	if sh := s.Shipment; sh != nil {
		out.Shipment = &ShipmentRequest{
			Street:         sh.Street,
			Number:         sh.Number,
			FloorApartment: sh.FloorApartment,
			Locality:       sh.Locality,
			Province:       sh.Province,
			PostalCode:     sh.PostalCode,
			ContactName:    sh.ContactName,
			ContactPhone:   sh.ContactPhone,
			Notes:          sh.Notes,
		}
	}
	return out
}

func NewStatusEntryResponse(e *entity.StatusEntry) StatusEntryResponse {
	return StatusEntryResponse{
		Seq:         e.Seq,
		State:       e.State,
		Description: e.Description,
		ActorID:     e.ActorID,
		CreatedAt:   e.CreatedAt,
	}
}

// NewHistoryResponse nunca devuelve listas nil (JSON []).
func NewHistoryResponse(saleID int64, commercial, logistics []*entity.StatusEntry) HistoryResponse {
	out := HistoryResponse{
		SaleID:     saleID,
		Commercial: make([]StatusEntryResponse, 0, len(commercial)),
		Logistics:  make([]StatusEntryResponse, 0, len(logistics)),
	}
	for _, e := range commercial {
		out.Commercial = append(out.Commercial, NewStatusEntryResponse(e))
	}
	for _, e := range logistics {
		out.Logistics = append(out.Logistics, NewStatusEntryResponse(e))
	}
	return out
}

func NewCommentResponse(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		SaleID:    c.SaleID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}
