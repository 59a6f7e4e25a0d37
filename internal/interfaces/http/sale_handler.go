package http

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// Headers del token de deduplicación.
const (
	HeaderIdempotencyKey      = "Idempotency-Key"
	HeaderIdempotencyReplayed = "Idempotent-Replayed"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	create   *sales.CreateSaleUseCase
	engine   *sales.StatusTransitionEngine
	query    *sales.SaleQueryUseCase
	comments *sales.CommentUseCase
	timeout  time.Duration
	log      *logger.Logger
}

// NewSaleHandler construye el handler. timeout <= 0 usa el contexto del request sin límite extra.
func NewSaleHandler(
	create *sales.CreateSaleUseCase,
	engine *sales.StatusTransitionEngine,
	query *sales.SaleQueryUseCase,
	comments *sales.CommentUseCase,
	timeout time.Duration,
	log *logger.Logger,
) *SaleHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleHandler{create: create, engine: engine, query: query, comments: comments, timeout: timeout, log: log}
}

func (h *SaleHandler) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func saleID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "debe ser un entero positivo")
	}
	return id, nil
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// Create godoc
// @Summary      Crear venta
// @Description  Alta de la venta con variante, envío y estado inicial de cada máquina en una sola transacción. Con un Idempotency-Key ya usado devuelve la venta original y el header Idempotent-Replayed.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                 false  "token de deduplicación"
// @Param        body             body      dto.CreateSaleRequest  true   "cliente (o client_id), plan, promoción, chip, variante y envío"
// @Success      201              {object}  dto.SaleResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      401              {object}  dto.ErrorResponse
// @Failure      409              {object}  dto.ErrorResponse
// @Failure      422              {object}  dto.ErrorResponse
// @Failure      500              {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.create.CreateSaleFromRequest(ctx, GetActorID(c), strings.TrimSpace(c.Get(HeaderIdempotencyKey)), in)
	if err != nil {
		return writeError(c, h.log, err)
	}

	resp := dto.NewSaleResponse(res.Sale, nil)
	history := dto.HistoryResponse{SaleID: res.Sale.ID, Commercial: []dto.StatusEntryResponse{}, Logistics: []dto.StatusEntryResponse{}}
	if res.Commercial != nil {
		resp.CommercialState = res.Commercial.State
		history.Commercial = append(history.Commercial, dto.NewStatusEntryResponse(res.Commercial))
	}
	if res.Logistics != nil {
		resp.LogisticsState = res.Logistics.State
		history.Logistics = append(history.Logistics, dto.NewStatusEntryResponse(res.Logistics))
	}
	resp.History = &history
	if res.Replayed {
		c.Set(HeaderIdempotencyReplayed, "true")
	}
	c.Location("/api/ventas/" + strconv.FormatInt(res.Sale.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener venta
// @Description  Venta con precio fijado, variante (sin PIN), envío y estado actual de cada máquina.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := saleID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	view, err := h.query.GetSale(ctx, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	resp := dto.NewSaleResponse(view.Sale, view.Client)
	resp.CommercialState = view.CommercialState
	resp.LogisticsState = view.LogisticsState
	return c.JSON(resp)
}

// UpdateCommercialState godoc
// @Summary      Cambiar estado comercial
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID de la venta"
// @Param        body  body      dto.TransitionRequest  true  "estado destino y descripción"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/estado [patch]
func (h *SaleHandler) UpdateCommercialState(c *fiber.Ctx) error {
	return h.transition(c, entity.MachineCommercial)
}

// UpdateLogisticsState godoc
// @Summary      Cambiar estado logístico
// @Description  Solo para ventas con chip físico y envío.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID de la venta"
// @Param        body  body      dto.TransitionRequest  true  "estado destino y descripción"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/logistica [patch]
func (h *SaleHandler) UpdateLogisticsState(c *fiber.Ctx) error {
	return h.transition(c, entity.MachineLogistics)
}

func (h *SaleHandler) transition(c *fiber.Ctx, machine entity.Machine) error {
	id, err := saleID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	ctx, cancel := h.ctx(c)
	defer cancel()

	entry, err := h.engine.TransitionFromRequest(ctx, id, machine, GetActorID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.TransitionResponse{
		SaleID:  id,
		Machine: string(machine),
		Entry:   dto.NewStatusEntryResponse(entry),
	})
}

// History godoc
// @Summary      Historial de estados
// @Description  Historial comercial y logístico ordenados por seq.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/historial [get]
func (h *SaleHandler) History(c *fiber.Ctx) error {
	id, err := saleID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	hist, err := h.query.History(ctx, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewHistoryResponse(id, hist.Commercial, hist.Logistics))
}

// AddComment godoc
// @Summary      Agregar comentario
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "ID de la venta"
// @Param        body  body      dto.CommentRequest  true  "texto del comentario"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/comentarios [post]
func (h *SaleHandler) AddComment(c *fiber.Ctx) error {
	id, err := saleID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.CommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	actorID := GetActorID(c)
	if actorID == "" {
		actorID = in.ActorID
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	comment, err := h.comments.AddComment(ctx, id, actorID, in.Body)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCommentResponse(comment))
}

// ListComments godoc
// @Summary      Listar comentarios
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la venta"
// @Success      200  {array}   dto.CommentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/comentarios [get]
func (h *SaleHandler) ListComments(c *fiber.Ctx) error {
	id, err := saleID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	list, err := h.comments.ListComments(ctx, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.CommentResponse, 0, len(list))
	for _, cm := range list {
		out = append(out, dto.NewCommentResponse(cm))
	}
	return c.JSON(out)
}
