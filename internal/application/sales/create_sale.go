package sales

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/pricing"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// ClientData datos de un cliente enviado en línea con la venta.
type ClientData struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone"`
}

// CreateSaleInput entrada de la creación de una venta. Client es excluyente con ClientID.
type CreateSaleInput struct {
	ClientID    string                `json:"client_id,omitempty"`
	Client      *ClientData           `json:"client,omitempty"`
	PlanID      string                `json:"plan_id"`
	PromotionID string                `json:"promotion_id,omitempty"`
	ChipType    entity.ChipType       `json:"chip_type"`
	Variant     entity.ProductVariant `json:"variant"`
	Shipment    *entity.Shipment      `json:"shipment,omitempty"`
	ActorID     string                `json:"actor_id"`
	// DedupToken opcional; con IdempotencyStore configurado repite la venta original.
	DedupToken string `json:"-"`
}

// SaleResult venta creada con sus entradas iniciales de historial.
type SaleResult struct {
	Sale       *entity.Sale
	Commercial *entity.StatusEntry
	Logistics  *entity.StatusEntry // nil sin envío
	// Replayed verdadero si la venta se devolvió por un token de deduplicación ya completado.
	Replayed bool
}

// CreateSaleConfig parámetros del coordinador de creación.
type CreateSaleConfig struct {
	MaxReferenceAttempts int
	IdempotencyTTL       time.Duration
	// PendingTTL vida del token mientras la creación está en curso; acota el bloqueo
	// si el proceso cae antes de completarlo o liberarlo.
	PendingTTL time.Duration
}

// CreateSaleUseCase coordina la creación de una venta: valida, calcula el precio fuera de la
// transacción y persiste venta, variante, envío, cliente y estados iniciales en una sola.
type CreateSaleUseCase struct {
	txRunner    SalesTxRunner
	catalogRepo repository.CatalogRepository
	clientRepo  repository.ClientRepository
	saleRepo    repository.SaleRepository
	historyRepo repository.HistoryRepository
	engine      *StatusTransitionEngine
	refCodes    ReferenceCodeGenerator
	dedup       IdempotencyStore // nil = sin deduplicación
	cfg         CreateSaleConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso. dedup puede ser nil.
func NewCreateSaleUseCase(
	txRunner SalesTxRunner,
	catalogRepo repository.CatalogRepository,
	clientRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
	historyRepo repository.HistoryRepository,
	engine *StatusTransitionEngine,
	refCodes ReferenceCodeGenerator,
	dedup IdempotencyStore,
	cfg CreateSaleConfig,
	log *logger.Logger,
) *CreateSaleUseCase {
	if cfg.MaxReferenceAttempts <= 0 {
		cfg.MaxReferenceAttempts = 3
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.PendingTTL <= 0 || cfg.PendingTTL > cfg.IdempotencyTTL {
		cfg.PendingTTL = min(2*time.Minute, cfg.IdempotencyTTL)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		catalogRepo: catalogRepo,
		clientRepo:  clientRepo,
		saleRepo:    saleRepo,
		historyRepo: historyRepo,
		engine:      engine,
		refCodes:    refCodes,
		dedup:       dedup,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

// SetClock reemplaza el reloj usado para vigencia de promociones y created_at (tests).
func (uc *CreateSaleUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// CreateSale crea la venta. Ante cualquier error no queda nada persistido.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (res *SaleResult, err error) {
	normalizeInput(&in)
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	// Reserva del token antes de mirar el catálogo: una repetición devuelve la venta
	// original aunque el plan haya cambiado después.
	var fingerprint string
	if uc.dedup != nil && in.DedupToken != "" {
		fingerprint, err = fingerprintOf(in)
		if err != nil {
			return nil, domain.Persistence("calcular huella", err)
		}
		var r Reservation
		r, err = uc.dedup.Reserve(ctx, in.DedupToken, fingerprint, uc.cfg.PendingTTL)
		if err != nil {
			return nil, domain.Persistence("reservar token de deduplicación", err)
		}
		switch r.State {
		case ReservationCompleted:
			return uc.replay(ctx, r.SaleID)
		case ReservationPending:
			return nil, domain.ErrIdempotencyInProgress
		}
		// La venta ya está confirmada o descartada: el token se cierra aunque el request haya vencido.
		defer func() {
			if err == nil {
				if cerr := uc.dedup.Complete(context.WithoutCancel(ctx), in.DedupToken, fingerprint, res.Sale.ID, uc.cfg.IdempotencyTTL); cerr != nil {
					uc.log.Warn().Err(cerr).Int64("sale_id", res.Sale.ID).Msg("no se pudo completar el token de deduplicación")
				}
				return
			}
			if rerr := uc.dedup.Release(context.WithoutCancel(ctx), in.DedupToken); rerr != nil {
				uc.log.Warn().Err(rerr).Msg("no se pudo liberar el token de deduplicación")
			}
		}()
	}

	now := uc.now().UTC()
	plan, promo, err := uc.checkOffer(ctx, in, now)
	if err != nil {
		return nil, err
	}
	if in.ClientID != "" {
		c, err := uc.clientRepo.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, domain.Persistence("leer cliente", err)
		}
		if c == nil {
			return nil, domain.NewValidationError("client_id", "el cliente no existe")
		}
	}

	discount := decimal.Zero
	if promo != nil {
		discount = promo.DiscountPercent
	}
	finalPrice, err := pricing.ComputePrice(plan.BasePrice, discount)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= uc.cfg.MaxReferenceAttempts; attempt++ {
		code, err := uc.refCodes.Next(ctx)
		if err != nil {
			return nil, domain.Persistence("generar código de referencia", err)
		}
		sale := &entity.Sale{
			ClientID:        in.ClientID,
			PlanID:          plan.ID,
			ChipType:        in.ChipType,
			Kind:            in.Variant.Kind(),
			BasePrice:       plan.BasePrice,
			DiscountPercent: discount,
			FinalPrice:      finalPrice,
			ReferenceCode:   code,
			CreatedBy:       in.ActorID,
			CreatedAt:       now,
			Variant:         in.Variant,
		}
		if promo != nil {
			sale.PromotionID = promo.ID
		}
		if in.Shipment != nil {
			shipment := *in.Shipment
			sale.Shipment = &shipment
		}

		res, err = uc.persist(ctx, sale, in)
		if err == nil {
			uc.log.Info().
				Int64("sale_id", sale.ID).
				Str("reference_code", sale.ReferenceCode).
				Str("kind", string(sale.Kind)).
				Str("chip_type", string(sale.ChipType)).
				Str("final_price", sale.FinalPrice.StringFixed(pricing.MinorUnitPlaces)).
				Str("actor_id", in.ActorID).
				Msg("venta creada")
			return res, nil
		}
		if !errors.Is(err, domain.ErrDuplicateReferenceCode) {
			return nil, err
		}
		uc.log.Warn().
			Str("reference_code", code).
			Int("attempt", attempt).
			Msg("código de referencia repetido, se reintenta")
	}
	return nil, domain.ErrDuplicateReferenceCode
}

// persist escribe todo en una transacción: cliente (si es nuevo), venta, variante, envío
// y estado inicial de cada máquina.
func (uc *CreateSaleUseCase) persist(ctx context.Context, sale *entity.Sale, in CreateSaleInput) (*SaleResult, error) {
	res := &SaleResult{Sale: sale}
	err := uc.txRunner.RunSales(ctx, func(repos SalesRepos) error {
		if sale.ClientID == "" {
			clientID, err := resolveClient(ctx, repos.Clients, in.Client, sale.CreatedAt)
			if err != nil {
				return err
			}
			sale.ClientID = clientID
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return domain.Persistence("crear venta", err)
		}
		if err := repos.Sales.CreateVariant(ctx, sale.ID, sale.Variant); err != nil {
			return domain.Persistence("crear variante", err)
		}
		if sale.Shipment != nil {
			sale.Shipment.SaleID = sale.ID
			if err := repos.Sales.CreateShipment(ctx, sale.Shipment); err != nil {
				return domain.Persistence("crear envío", err)
			}
		}
		var err error
		res.Commercial, err = uc.engine.seed(ctx, repos.History, sale.ID, entity.MachineCommercial, "venta creada", in.ActorID)
		if err != nil {
			return err
		}
		if sale.Shipment != nil {
			res.Logistics, err = uc.engine.seed(ctx, repos.History, sale.ID, entity.MachineLogistics, "envío asignado", in.ActorID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if in.Client != nil {
			sale.ClientID = ""
		}
		return nil, err
	}
	return res, nil
}

// resolveClient busca el cliente por documento y lo crea si no existe.
func resolveClient(ctx context.Context, clients repository.ClientRepository, data *ClientData, now time.Time) (string, error) {
	existing, err := clients.GetByDocument(ctx, data.DocumentType, data.DocumentNumber)
	if err != nil {
		return "", domain.Persistence("buscar cliente", err)
	}
	if existing != nil {
		return existing.ID, nil
	}
	c := &entity.Client{
		ID:             uuid.New().String(),
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		DocumentType:   data.DocumentType,
		DocumentNumber: data.DocumentNumber,
		Email:          data.Email,
		Phone:          data.Phone,
		CreatedAt:      now,
	}
	if err := clients.Create(ctx, c); err != nil {
		return "", domain.Persistence("crear cliente", err)
	}
	return c.ID, nil
}

// checkOffer aplica las reglas de compatibilidad entre variante, plan y promoción.
func (uc *CreateSaleUseCase) checkOffer(ctx context.Context, in CreateSaleInput, now time.Time) (*entity.Plan, *entity.Promotion, error) {
	companyID := in.Variant.CompanyID()
	company, err := uc.catalogRepo.GetOriginCompany(ctx, companyID)
	if err != nil {
		return nil, nil, domain.Persistence("leer empresa", err)
	}
	if company == nil {
		return nil, nil, domain.NewValidationError(companyField(in.Variant), "la empresa no existe")
	}

	plan, err := uc.catalogRepo.GetPlan(ctx, in.PlanID)
	if err != nil {
		return nil, nil, domain.Persistence("leer plan", err)
	}
	if plan == nil {
		return nil, nil, domain.NewValidationError("plan_id", "el plan no existe")
	}
	if !plan.Active {
		return nil, nil, &domain.IncompatibleOfferError{Reason: "el plan no está activo"}
	}
	if plan.CompanyID != companyID {
		return nil, nil, &domain.IncompatibleOfferError{Reason: "el plan pertenece a otra empresa"}
	}

	if in.PromotionID == "" {
		return plan, nil, nil
	}
	promo, err := uc.catalogRepo.GetPromotion(ctx, in.PromotionID)
	if err != nil {
		return nil, nil, domain.Persistence("leer promoción", err)
	}
	if promo == nil {
		return nil, nil, domain.NewValidationError("promotion_id", "la promoción no existe")
	}
	switch {
	case promo.CompanyID != companyID:
		return nil, nil, &domain.IncompatibleOfferError{Reason: "la promoción pertenece a otra empresa"}
	case promo.PlanID != "" && promo.PlanID != plan.ID:
		return nil, nil, &domain.IncompatibleOfferError{Reason: "la promoción no aplica al plan elegido"}
	case !promo.ValidAt(now):
		return nil, nil, &domain.IncompatibleOfferError{Reason: "la promoción no está vigente"}
	}
	return plan, promo, nil
}

// replay reconstruye el resultado de una venta ya creada con el mismo token.
func (uc *CreateSaleUseCase) replay(ctx context.Context, saleID int64) (*SaleResult, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, domain.Persistence("leer venta", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	res := &SaleResult{Sale: sale, Replayed: true}
	if res.Commercial, err = first(ctx, uc.historyRepo, saleID, entity.MachineCommercial); err != nil {
		return nil, err
	}
	if sale.HasLogistics() {
		if res.Logistics, err = first(ctx, uc.historyRepo, saleID, entity.MachineLogistics); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func first(ctx context.Context, hist repository.HistoryRepository, saleID int64, m entity.Machine) (*entity.StatusEntry, error) {
	entries, err := hist.List(ctx, saleID, m)
	if err != nil {
		return nil, domain.Persistence("leer historial", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

func normalizeInput(in *CreateSaleInput) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.PlanID = strings.TrimSpace(in.PlanID)
	in.PromotionID = strings.TrimSpace(in.PromotionID)
	in.ActorID = strings.TrimSpace(in.ActorID)
	in.DedupToken = strings.TrimSpace(in.DedupToken)
	if in.Client != nil {
		c := *in.Client
		c.FirstName = normalizeName(c.FirstName)
		c.LastName = normalizeName(c.LastName)
		c.DocumentType = normalizeDocument(c.DocumentType)
		c.DocumentNumber = normalizeDocument(c.DocumentNumber)
		c.Email = strings.ToLower(strings.TrimSpace(c.Email))
		c.Phone = normalizePhone(c.Phone)
		in.Client = &c
	}
	switch v := in.Variant.(type) {
	case entity.Portability:
		v.NumberToPort = normalizePhone(v.NumberToPort)
		v.PIN = strings.TrimSpace(v.PIN)
		in.Variant = v
	case entity.NewLine:
		v.AssignedNumber = normalizePhone(v.AssignedNumber)
		in.Variant = v
	}
	if in.Shipment != nil {
		s := *in.Shipment
		s.ContactName = normalizeName(s.ContactName)
		s.ContactPhone = normalizePhone(s.ContactPhone)
		in.Shipment = &s
	}
}

func validateCreateInput(in CreateSaleInput) error {
	verr := &domain.ValidationError{}
	add := func(field, reason string) {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: field, Reason: reason})
	}

	if in.ActorID == "" {
		add("actor_id", "requerido")
	}
	if in.PlanID == "" {
		add("plan_id", "requerido")
	}
	switch {
	case in.ClientID != "" && in.Client != nil:
		add("client", "enviar client_id o datos del cliente, no ambos")
	case in.ClientID == "" && in.Client == nil:
		add("client", "se requiere client_id o datos del cliente")
	case in.Client != nil:
		validateClient(in.Client, add)
	}

	switch v := in.Variant.(type) {
	case entity.Portability:
		if v.DonorCompanyID == "" {
			add("variant.portability.donor_company_id", "requerido")
		}
		if !v.OriginMarket.IsValid() {
			add("variant.portability.origin_market", "debe ser PREPAGO o POSPAGO")
		}
		if !tenDigitsRe.MatchString(v.NumberToPort) {
			add("variant.portability.number_to_port", "debe tener 10 dígitos")
		}
		if !pinRe.MatchString(v.PIN) {
			add("variant.portability.pin", "debe tener 4 dígitos")
		}
	case entity.NewLine:
		if v.TargetCompanyID == "" {
			add("variant.new_line.target_company_id", "requerido")
		}
		if !tenDigitsRe.MatchString(v.AssignedNumber) {
			add("variant.new_line.assigned_number", "debe tener 10 dígitos")
		}
	default:
		add("variant", "se requiere exactamente una variante: portabilidad o línea nueva")
	}

	if !in.ChipType.IsValid() {
		add("chip_type", "debe ser FISICO o ESIM")
	} else if in.ChipType.RequiresShipment() && in.Shipment == nil {
		add("shipment", "requerido para chip físico")
	} else if !in.ChipType.RequiresShipment() && in.Shipment != nil {
		add("shipment", "no corresponde para eSIM")
	}
	if in.Shipment != nil {
		validateShipment(in.Shipment, add)
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func validateClient(c *ClientData, add func(field, reason string)) {
	if c.FirstName == "" {
		add("client.first_name", "requerido")
	}
	if c.LastName == "" {
		add("client.last_name", "requerido")
	}
	switch c.DocumentType {
	case entity.DocumentDNI, entity.DocumentCUIL, entity.DocumentCUIT, entity.DocumentPasaporte:
	default:
		add("client.document_type", "debe ser DNI, CUIL, CUIT o PASAPORTE")
	}
	if c.DocumentNumber == "" {
		add("client.document_number", "requerido")
	}
	if c.Phone == "" {
		add("client.phone", "requerido")
	}
}

func validateShipment(s *entity.Shipment, add func(field, reason string)) {
	required := map[string]string{
		"shipment.street":        s.Street,
		"shipment.number":        s.Number,
		"shipment.locality":      s.Locality,
		"shipment.province":      s.Province,
		"shipment.postal_code":   s.PostalCode,
		"shipment.contact_name":  s.ContactName,
		"shipment.contact_phone": s.ContactPhone,
	}
	for _, field := range []string{
		"shipment.street", "shipment.number", "shipment.locality", "shipment.province",
		"shipment.postal_code", "shipment.contact_name", "shipment.contact_phone",
	} {
		if strings.TrimSpace(required[field]) == "" {
			add(field, "requerido")
		}
	}
}

func companyField(v entity.ProductVariant) string {
	if v.Kind() == entity.KindPortability {
		return "variant.portability.donor_company_id"
	}
	return "variant.new_line.target_company_id"
}

// fingerprintOf huella del contenido de la solicitud (sin el token).
func fingerprintOf(in CreateSaleInput) (string, error) {
	payload := struct {
		CreateSaleInput
		Kind entity.SaleKind `json:"kind"`
	}{CreateSaleInput: in, Kind: in.Variant.Kind()}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
