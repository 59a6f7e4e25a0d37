package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	ErrIncompatibleOffer      = errors.New("plan o promoción incompatibles con la empresa de la venta")
	ErrInvalidPricingInput    = errors.New("precio base o descuento inválidos")
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrConcurrentTransition   = errors.New("otra transición concurrente ganó la carrera sobre el mismo estado")
	ErrDuplicateReferenceCode = errors.New("código de referencia externo duplicado")
	ErrPersistence            = errors.New("falla de persistencia")

	ErrLogisticsNotApplicable = errors.New("la venta no tiene envío físico asociado")
	ErrIdempotencyInProgress  = errors.New("la solicitud con ese token de deduplicación aún está en proceso")
	ErrIdempotencyMismatch    = errors.New("el token de deduplicación ya se usó con otro contenido")
)

// FieldError describe un campo inválido de la entrada.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError agrupa los campos inválidos detectados antes de cualquier escritura.
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// IncompatibleOfferError indica qué regla de compatibilidad de la oferta se violó.
type IncompatibleOfferError struct {
	Reason string
}

func (e *IncompatibleOfferError) Error() string {
	return ErrIncompatibleOffer.Error() + ": " + e.Reason
}

func (e *IncompatibleOfferError) Unwrap() error { return ErrIncompatibleOffer }

// InvalidTransitionError transición rechazada por la tabla; From vacío = máquina sin inicializar.
type InvalidTransitionError struct {
	Machine string
	From    string
	To      string
}

func (e *InvalidTransitionError) Error() string {
	from := e.From
	if from == "" {
		from = "(sin estado)"
	}
	return fmt.Sprintf("%s: máquina %s, %s -> %s", ErrInvalidTransition.Error(), e.Machine, from, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// PersistenceError envuelve una falla de almacenamiento. errors.Is(err, ErrPersistence) es verdadero
// y la causa original sigue accesible con errors.As / errors.Unwrap.
type PersistenceError struct {
	Op  string
	Err error
}

// Persistence envuelve err como falla de persistencia salvo que ya sea un error de dominio conocido.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence.Error(), e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// IsKnown indica si err pertenece a la taxonomía de errores de la venta.
func IsKnown(err error) bool {
	for _, k := range []error{
		ErrNotFound, ErrInvalidInput, ErrIncompatibleOffer, ErrInvalidPricingInput,
		ErrInvalidTransition, ErrConcurrentTransition, ErrDuplicateReferenceCode, ErrPersistence,
		ErrLogisticsNotApplicable, ErrIdempotencyInProgress, ErrIdempotencyMismatch,
	} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
