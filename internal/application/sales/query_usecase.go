package sales

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SaleView venta con el estado actual de cada máquina, proyectado del historial al momento de la consulta.
type SaleView struct {
	Sale            *entity.Sale
	Client          *entity.Client
	CommercialState string
	LogisticsState  string // vacío sin envío
}

// SaleHistory historiales de ambas máquinas ordenados por seq.
type SaleHistory struct {
	Commercial []*entity.StatusEntry
	Logistics  []*entity.StatusEntry
}

// SaleQueryUseCase lecturas de ventas e historiales. El estado actual nunca se cachea.
type SaleQueryUseCase struct {
	saleRepo    repository.SaleRepository
	historyRepo repository.HistoryRepository
	clientRepo  repository.ClientRepository
}

// NewSaleQueryUseCase construye el caso de uso de consultas.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository, historyRepo repository.HistoryRepository, clientRepo repository.ClientRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, historyRepo: historyRepo, clientRepo: clientRepo}
}

// GetSale devuelve la venta o ErrNotFound.
func (uc *SaleQueryUseCase) GetSale(ctx context.Context, id int64) (*SaleView, error) {
	sale, err := uc.getSale(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &SaleView{Sale: sale}
	if view.Client, err = uc.clientRepo.GetByID(ctx, sale.ClientID); err != nil {
		return nil, domain.Persistence("leer cliente", err)
	}
	head, err := uc.historyRepo.Latest(ctx, id, entity.MachineCommercial, false)
	if err != nil {
		return nil, domain.Persistence("leer estado comercial", err)
	}
	if head != nil {
		view.CommercialState = head.State
	}
	if sale.HasLogistics() {
		head, err = uc.historyRepo.Latest(ctx, id, entity.MachineLogistics, false)
		if err != nil {
			return nil, domain.Persistence("leer estado logístico", err)
		}
		if head != nil {
			view.LogisticsState = head.State
		}
	}
	return view, nil
}

// History devuelve ambos historiales. Una venta sin envío tiene historial logístico vacío.
func (uc *SaleQueryUseCase) History(ctx context.Context, id int64) (*SaleHistory, error) {
	if _, err := uc.getSale(ctx, id); err != nil {
		return nil, err
	}
	commercial, err := uc.historyRepo.List(ctx, id, entity.MachineCommercial)
	if err != nil {
		return nil, domain.Persistence("listar historial comercial", err)
	}
	logistics, err := uc.historyRepo.List(ctx, id, entity.MachineLogistics)
	if err != nil {
		return nil, domain.Persistence("listar historial logístico", err)
	}
	return &SaleHistory{Commercial: commercial, Logistics: logistics}, nil
}

func (uc *SaleQueryUseCase) getSale(ctx context.Context, id int64) (*entity.Sale, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "debe ser positivo")
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("leer venta", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}
