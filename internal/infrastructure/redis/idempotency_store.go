package redis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
)

var _ sales.IdempotencyStore = (*IdempotencyStore)(nil)

const (
	keyPrefix = "ventas:dedup:"

	statusPending   = "pending"
	statusCompleted = "completed"
)

type record struct {
	Fingerprint string `json:"fingerprint"`
	Status      string `json:"status"`
	SaleID      int64  `json:"sale_id,omitempty"`
}

// IdempotencyStore tokens de deduplicación de creación de ventas en Redis.
// Cada token es una clave con TTL: pending al reservar, completed con el ID de la venta al terminar.
type IdempotencyStore struct {
	rdb goredis.UniversalClient
}

// NewIdempotencyStore construye el store sobre un cliente existente.
func NewIdempotencyStore(rdb goredis.UniversalClient) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

// key no guarda el token crudo: puede venir de un formulario con datos del cliente.
func key(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Reserve intenta SET NX del token en estado pending. Si ya existe, informa su estado.
func (s *IdempotencyStore) Reserve(ctx context.Context, token, fingerprint string, ttl time.Duration) (sales.Reservation, error) {
	pending, err := json.Marshal(record{Fingerprint: fingerprint, Status: statusPending})
	if err != nil {
		return sales.Reservation{}, err
	}
	k := key(token)
	// Dos vueltas: la clave puede vencer entre SETNX y GET.
	for i := 0; i < 2; i++ {
		ok, err := s.rdb.SetNX(ctx, k, pending, ttl).Result()
		if err != nil {
			return sales.Reservation{}, fmt.Errorf("redis setnx: %w", err)
		}
		if ok {
			return sales.Reservation{State: sales.ReservationNew}, nil
		}
		raw, err := s.rdb.Get(ctx, k).Bytes()
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return sales.Reservation{}, fmt.Errorf("redis get: %w", err)
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return sales.Reservation{}, fmt.Errorf("decodificar token: %w", err)
		}
		if rec.Fingerprint != fingerprint {
			return sales.Reservation{}, domain.ErrIdempotencyMismatch
		}
		if rec.Status == statusCompleted {
			return sales.Reservation{State: sales.ReservationCompleted, SaleID: rec.SaleID}, nil
		}
		return sales.Reservation{State: sales.ReservationPending}, nil
	}
	return sales.Reservation{State: sales.ReservationPending}, nil
}

// Complete marca el token como completado con el ID de la venta creada.
func (s *IdempotencyStore) Complete(ctx context.Context, token, fingerprint string, saleID int64, ttl time.Duration) error {
	done, err := json.Marshal(record{Fingerprint: fingerprint, Status: statusCompleted, SaleID: saleID})
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key(token), done, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Release borra el token para que la solicitud pueda reintentarse tras un error.
func (s *IdempotencyStore) Release(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
