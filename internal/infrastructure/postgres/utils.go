package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// Códigos SQLSTATE que el motor de ventas distingue.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03" // lock_timeout
)

// Constraints únicas con significado de dominio (ver schema.sql).
const (
	constraintSaleReferenceCode = "sale_reference_code_key"
	constraintClientDocument    = "client_document_key"
)

func pgCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeUniqueViolation
}

// isConcurrencyConflict violación del seq del historial, serialización, deadlock o lock_timeout.
func isConcurrencyConflict(err error) bool {
	switch code, _ := pgCode(err); code {
	case codeUniqueViolation, codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}

// mapHistoryError traduce errores de escritura/lectura bloqueante del historial.
func mapHistoryError(op string, err error) error {
	if isConcurrencyConflict(err) {
		return domain.ErrConcurrentTransition
	}
	return domain.Persistence(op, err)
}
