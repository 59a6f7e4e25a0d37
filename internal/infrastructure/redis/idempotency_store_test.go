package redis_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/infrastructure/redis"
)

func newStore(t *testing.T) (*redis.IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewIdempotencyStore(client), mr
}

func TestIdempotencyStore_CicloCompleto(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	r, err := s.Reserve(ctx, "tok", "fp1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, sales.ReservationNew, r.State)

	r, err = s.Reserve(ctx, "tok", "fp1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, sales.ReservationPending, r.State)

	require.NoError(t, s.Complete(ctx, "tok", "fp1", 42, time.Hour))
	r, err = s.Reserve(ctx, "tok", "fp1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, sales.ReservationCompleted, r.State)
	assert.Equal(t, int64(42), r.SaleID)
}

func TestIdempotencyStore_HuellaDistinta(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.Reserve(ctx, "tok", "fp1", time.Hour)
	require.NoError(t, err)
	_, err = s.Reserve(ctx, "tok", "fp2", time.Hour)
	assert.ErrorIs(t, err, domain.ErrIdempotencyMismatch)
}

func TestIdempotencyStore_ReleasePermiteReintentar(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.Reserve(ctx, "tok", "fp1", time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.Release(ctx, "tok"))

	r, err := s.Reserve(ctx, "tok", "fp2", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, sales.ReservationNew, r.State)
}

func TestIdempotencyStore_VencimientoYClaveHasheada(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	_, err := s.Reserve(ctx, "formulario-ana-30123456", "fp1", time.Minute)
	require.NoError(t, err)
	for _, k := range mr.Keys() {
		assert.NotContains(t, k, "30123456", "el token crudo no se guarda")
	}

	mr.FastForward(2 * time.Minute)
	r, err := s.Reserve(ctx, "formulario-ana-30123456", "fp2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, sales.ReservationNew, r.State)
}

func TestIdempotencyStore_RedisCaido(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()

	_, err := s.Reserve(context.Background(), "tok", "fp", time.Minute)
	assert.Error(t, err)
}
