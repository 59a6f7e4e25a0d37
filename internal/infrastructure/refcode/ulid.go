// Package refcode genera códigos de referencia externos (tipo SAP) para ventas.
package refcode

import (
	"context"
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jhoicas/ventas-api/internal/application/sales"
)

var _ sales.ReferenceCodeGenerator = (*ULIDGenerator)(nil)

// ULIDGenerator produce <prefix><ULID>: ordenable por tiempo y sin coordinación entre instancias.
// La unicidad final la garantiza la restricción única de la base.
type ULIDGenerator struct {
	prefix  string
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewULIDGenerator usa entropía monótona sobre crypto/rand.
func NewULIDGenerator(prefix string) *ULIDGenerator {
	return &ULIDGenerator{
		prefix:  prefix,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Next devuelve un nuevo código.
func (g *ULIDGenerator) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		return "", err
	}
	return g.prefix + id.String(), nil
}
