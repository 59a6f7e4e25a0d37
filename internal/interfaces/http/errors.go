package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/lifecycle"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// transitionDetails contexto de una transición rechazada.
type transitionDetails struct {
	Machine string   `json:"machine"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Allowed []string `json:"allowed"`
}

// errorStatus traduce un error de dominio a status HTTP y cuerpo.
func errorStatus(err error) (int, dto.ErrorResponse) {
	var (
		verr *domain.ValidationError
		terr *domain.InvalidTransitionError
		oerr *domain.IncompatibleOfferError
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: verr.Fields}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"}
	case errors.As(err, &terr):
		allowed := []string{}
		if terr.From != "" {
			allowed = append(allowed, lifecycle.AllowedNext(entity.Machine(terr.Machine), terr.From)...)
		}
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INVALID_TRANSITION",
			Message: terr.Error(),
			Details: transitionDetails{Machine: terr.Machine, From: terr.From, To: terr.To, Allowed: allowed},
		}
	case errors.Is(err, domain.ErrConcurrentTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONCURRENT_TRANSITION_CONFLICT", Message: "otra operación modificó la venta; reintente"}
	case errors.Is(err, domain.ErrDuplicateReferenceCode):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE_REFERENCE_CODE", Message: "no se pudo asignar un código de referencia único"}
	case errors.Is(err, domain.ErrIdempotencyInProgress):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "IDEMPOTENCY_IN_PROGRESS", Message: domain.ErrIdempotencyInProgress.Error()}
	case errors.As(err, &oerr):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "INCOMPATIBLE_OFFER", Message: oerr.Error(), Details: fiber.Map{"reason": oerr.Reason}}
	case errors.Is(err, domain.ErrInvalidPricingInput):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "INVALID_PRICING_INPUT", Message: domain.ErrInvalidPricingInput.Error()}
	case errors.Is(err, domain.ErrLogisticsNotApplicable):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "LOGISTICS_NOT_APPLICABLE", Message: domain.ErrLogisticsNotApplicable.Error()}
	case errors.Is(err, domain.ErrIdempotencyMismatch):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "IDEMPOTENCY_KEY_REUSED", Message: domain.ErrIdempotencyMismatch.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "PERSISTENCE_FAILURE", Message: "error interno de almacenamiento"}
	}
}

// writeError responde el error; los 5xx se registran con la causa (que no se expone al cliente).
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("falla interna")
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de ruta, body excedido).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
