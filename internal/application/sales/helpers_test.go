package sales_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA  = "11111111-0000-0000-0000-00000000000a"
	companyB  = "11111111-0000-0000-0000-00000000000b"
	planA     = "22222222-0000-0000-0000-00000000000a"
	planA2    = "22222222-0000-0000-0000-0000000000a2"
	planB     = "22222222-0000-0000-0000-00000000000b"
	planOff   = "22222222-0000-0000-0000-0000000000ff"
	promoA20  = "33333333-0000-0000-0000-00000000000a"
	promoB    = "33333333-0000-0000-0000-00000000000b"
	promoOld  = "33333333-0000-0000-0000-0000000000c0"
	promoPlan = "33333333-0000-0000-0000-0000000000d0"
	seller    = "vendedor-1"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// seqCodes genera códigos de una lista fija y luego SAP-<n>.
type seqCodes struct {
	mu    sync.Mutex
	fixed []string
	n     int
}

func (g *seqCodes) Next(context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.fixed) > 0 {
		c := g.fixed[0]
		g.fixed = g.fixed[1:]
		return c, nil
	}
	g.n++
	return fmt.Sprintf("SAP-%06d", g.n), nil
}

type fixture struct {
	store    *memory.Store
	codes    *seqCodes
	dedup    *memory.IdempotencyStore
	engine   *sales.StatusTransitionEngine
	create   *sales.CreateSaleUseCase
	query    *sales.SaleQueryUseCase
	comments *sales.CommentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cat := store.Catalog()
	cat.AddCompany(entity.OriginCompany{ID: companyA, Name: "Empresa A", Active: true})
	cat.AddCompany(entity.OriginCompany{ID: companyB, Name: "Empresa B", Active: true})
	cat.AddPlan(entity.Plan{ID: planA, CompanyID: companyA, Name: "Plan 10GB", BasePrice: decimal.RequireFromString("900.00"), Active: true})
	cat.AddPlan(entity.Plan{ID: planA2, CompanyID: companyA, Name: "Plan 20GB", BasePrice: decimal.RequireFromString("1000.00"), Active: true})
	cat.AddPlan(entity.Plan{ID: planB, CompanyID: companyB, Name: "Plan B", BasePrice: decimal.RequireFromString("500.00"), Active: true})
	cat.AddPlan(entity.Plan{ID: planOff, CompanyID: companyA, Name: "Plan discontinuado", BasePrice: decimal.RequireFromString("100.00"), Active: false})
	cat.AddPromotion(entity.Promotion{ID: promoA20, CompanyID: companyA, Name: "20% off", DiscountPercent: decimal.NewFromInt(20), ValidFrom: fixedNow.AddDate(0, -1, 0), Active: true})
	cat.AddPromotion(entity.Promotion{ID: promoB, CompanyID: companyB, Name: "B 10%", DiscountPercent: decimal.NewFromInt(10), ValidFrom: fixedNow.AddDate(0, -1, 0), Active: true})
	expired := fixedNow.AddDate(0, 0, -1)
	cat.AddPromotion(entity.Promotion{ID: promoOld, CompanyID: companyA, Name: "vencida", DiscountPercent: decimal.NewFromInt(50), ValidFrom: fixedNow.AddDate(0, -2, 0), ValidTo: &expired, Active: true})
	cat.AddPromotion(entity.Promotion{ID: promoPlan, CompanyID: companyA, PlanID: planA2, Name: "solo plan 20GB", DiscountPercent: decimal.NewFromInt(15), ValidFrom: fixedNow.AddDate(0, -1, 0), Active: true})

	log := logger.Nop()
	codes := &seqCodes{}
	dedup := memory.NewIdempotencyStore()
	recorder := sales.NewAuditTrailRecorder()
	recorder.SetClock(func() time.Time { return fixedNow })
	engine := sales.NewStatusTransitionEngine(store, recorder, log)
	create := sales.NewCreateSaleUseCase(
		store, cat, store.Clients(), store.Sales(), store.History(),
		engine, codes, dedup,
		sales.CreateSaleConfig{MaxReferenceAttempts: 3, IdempotencyTTL: time.Hour},
		log,
	)
	create.SetClock(func() time.Time { return fixedNow })

	return &fixture{
		store:    store,
		codes:    codes,
		dedup:    dedup,
		engine:   engine,
		create:   create,
		query:    sales.NewSaleQueryUseCase(store.Sales(), store.History(), store.Clients()),
		comments: sales.NewCommentUseCase(store.Sales(), store.Comments()),
	}
}

func inlineClient() *sales.ClientData {
	return &sales.ClientData{
		FirstName:      "María José",
		LastName:       "Pérez",
		DocumentType:   "dni",
		DocumentNumber: "30.123.456",
		Phone:          "11 5555-0000",
	}
}

func shipment() *entity.Shipment {
	return &entity.Shipment{
		Street:       "Av. Siempre Viva",
		Number:       "742",
		Locality:     "Springfield",
		Province:     "Buenos Aires",
		PostalCode:   "1900",
		ContactName:  "María José Pérez",
		ContactPhone: "1155550000",
	}
}

// portabilityInput venta de portabilidad desde la empresa A con chip físico, plan 900 y 20%.
func portabilityInput() sales.CreateSaleInput {
	return sales.CreateSaleInput{
		Client:      inlineClient(),
		PlanID:      planA,
		PromotionID: promoA20,
		ChipType:    entity.ChipFisico,
		Variant: entity.Portability{
			DonorCompanyID: companyA,
			OriginMarket:   entity.MarketPrepago,
			NumberToPort:   "1144445555",
			PIN:            "1234",
		},
		Shipment: shipment(),
		ActorID:  seller,
	}
}

// esimInput línea nueva eSIM en la empresa A, sin promoción.
func esimInput() sales.CreateSaleInput {
	return sales.CreateSaleInput{
		Client:   inlineClient(),
		PlanID:   planA,
		ChipType: entity.ChipESIM,
		Variant:  entity.NewLine{AssignedNumber: "1166667777", TargetCompanyID: companyA},
		ActorID:  seller,
	}
}

func (f *fixture) mustCreate(t *testing.T, in sales.CreateSaleInput) *sales.SaleResult {
	t.Helper()
	res, err := f.create.CreateSale(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func (f *fixture) transition(saleID int64, m entity.Machine, state, actor string) (*entity.StatusEntry, error) {
	return f.engine.Transition(context.Background(), sales.TransitionInput{
		SaleID:  saleID,
		Machine: m,
		State:   state,
		ActorID: actor,
	})
}
