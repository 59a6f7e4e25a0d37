package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
)

var _ sales.IdempotencyStore = (*IdempotencyStore)(nil)

type idemRecord struct {
	fingerprint string
	completed   bool
	saleID      int64
	expiresAt   time.Time
}

// IdempotencyStore tokens de deduplicación en memoria con vencimiento.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[string]idemRecord
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: map[string]idemRecord{}, now: time.Now}
}

func (s *IdempotencyStore) Reserve(_ context.Context, key, fingerprint string, ttl time.Duration) (sales.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	rec, ok := s.records[key]
	if !ok || now.After(rec.expiresAt) {
		s.records[key] = idemRecord{fingerprint: fingerprint, expiresAt: now.Add(ttl)}
		return sales.Reservation{State: sales.ReservationNew}, nil
	}
	if rec.fingerprint != fingerprint {
		return sales.Reservation{}, domain.ErrIdempotencyMismatch
	}
	if rec.completed {
		return sales.Reservation{State: sales.ReservationCompleted, SaleID: rec.saleID}, nil
	}
	return sales.Reservation{State: sales.ReservationPending}, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key, fingerprint string, saleID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = idemRecord{fingerprint: fingerprint, completed: true, saleID: saleID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
