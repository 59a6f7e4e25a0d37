package sales

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CreateSaleFromRequest valida el body HTTP y delega en CreateSale.
// actorID viene del token; si está vacío se usa in.ActorID. dedupToken (header) tiene
// prioridad sobre in.DedupToken.
func (uc *CreateSaleUseCase) CreateSaleFromRequest(ctx context.Context, actorID, dedupToken string, in dto.CreateSaleRequest) (*SaleResult, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if actorID == "" {
		actorID = in.ActorID
	}
	if dedupToken == "" {
		dedupToken = in.DedupToken
	}
	input := CreateSaleInput{
		ClientID:    in.ClientID,
		PlanID:      in.PlanID,
		PromotionID: in.PromotionID,
		ChipType:    entity.ChipType(in.ChipType),
		Variant:     in.Variant.ToVariant(),
		Shipment:    in.Shipment.ToShipment(),
		ActorID:     actorID,
		DedupToken:  dedupToken,
	}
	if c := in.Client; c != nil {
		input.Client = &ClientData{
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			DocumentType:   c.DocumentType,
			DocumentNumber: c.DocumentNumber,
			Email:          c.Email,
			Phone:          c.Phone,
		}
	}
	return uc.CreateSale(ctx, input)
}

// TransitionFromRequest valida el body y aplica la transición sobre machine.
func (e *StatusTransitionEngine) TransitionFromRequest(ctx context.Context, saleID int64, machine entity.Machine, actorID string, in dto.TransitionRequest) (*entity.StatusEntry, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if actorID == "" {
		actorID = in.ActorID
	}
	return e.Transition(ctx, TransitionInput{
		SaleID:      saleID,
		Machine:     machine,
		State:       in.State,
		Description: in.Description,
		ActorID:     actorID,
	})
}
