package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ventas-api/internal/domain"
)

func TestMapHistoryError(t *testing.T) {
	for _, code := range []string{"23505", "40001", "40P01", "55P03"} {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: code})
		assert.ErrorIs(t, mapHistoryError("op", err), domain.ErrConcurrentTransition, code)
	}

	fk := &pgconn.PgError{Code: "23503"}
	got := mapHistoryError("op", fk)
	assert.ErrorIs(t, got, domain.ErrPersistence)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(got, &pgErr), "la causa original sigue accesible")
}

func TestPgCode_ConstraintDeCodigoDeReferencia(t *testing.T) {
	code, constraint := pgCode(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraintSaleReferenceCode}))
	assert.Equal(t, codeUniqueViolation, code)
	assert.Equal(t, "sale_reference_code_key", constraint)
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en texto no cuenta")))
}

func TestHistoryTable(t *testing.T) {
	tbl, err := historyTable("COMERCIAL")
	assert.NoError(t, err)
	assert.Equal(t, "commercial_history", tbl)
	_, err = historyTable("OTRA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
