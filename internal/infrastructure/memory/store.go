// Package memory implementa los puertos de ventas en memoria. Lo usan los tests de
// casos de uso y HTTP; las transacciones son serializables (un escritor a la vez) y
// se descartan completas si fn falla.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

var _ sales.SalesTxRunner = (*Store)(nil)

type streamKey struct {
	saleID  int64
	machine entity.Machine
}

type state struct {
	nextSaleID    int64
	nextCommentID int64
	sales         map[int64]entity.Sale
	codes         map[string]int64
	clients       map[string]entity.Client
	history       map[streamKey][]entity.StatusEntry
	comments      map[int64][]entity.Comment
}

func newState() *state {
	return &state{
		sales:    map[int64]entity.Sale{},
		codes:    map[string]int64{},
		clients:  map[string]entity.Client{},
		history:  map[streamKey][]entity.StatusEntry{},
		comments: map[int64][]entity.Comment{},
	}
}

func (s *state) clone() *state {
	c := newState()
	c.nextSaleID = s.nextSaleID
	c.nextCommentID = s.nextCommentID
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.codes {
		c.codes[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.history {
		c.history[k] = append([]entity.StatusEntry(nil), v...)
	}
	for k, v := range s.comments {
		c.comments[k] = append([]entity.Comment(nil), v...)
	}
	return c
}

// Store base de datos en memoria con catálogo, clientes, ventas, historiales y comentarios.
type Store struct {
	mu      sync.Mutex
	data    *state
	catalog *Catalog

	// inyección de fallas: la escritura número failAt dentro de transacciones devuelve failErr.
	failAt  int
	writes  int
	failErr error
}

// NewStore crea un store vacío con catálogo vacío.
func NewStore() *Store {
	return &Store{data: newState(), catalog: NewCatalog()}
}

// Catalog catálogo de solo lectura; los tests lo cargan con Add*.
func (s *Store) Catalog() *Catalog { return s.catalog }

// FailOnWrite hace que la escritura número n (desde ahora, contando desde 1) dentro de una
// transacción falle con err. n <= 0 desactiva la inyección.
func (s *Store) FailOnWrite(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAt, s.writes, s.failErr = n, 0, err
}

// RunSales ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
func (s *Store) RunSales(ctx context.Context, fn func(repos sales.SalesRepos) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Persistence("begin transaction", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	tx := &txView{store: s, data: work, inTx: true}
	if err := fn(tx.repos()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.Persistence("commit transaction", err)
	}
	s.data = work
	return nil
}

// Sales, History, Clients y Comments devuelven repos fuera de transacción (lecturas y escrituras
// autocommit), como los repos construidos sobre el pool.
func (s *Store) Sales() *SaleRepository       { return &SaleRepository{v: s.auto()} }
func (s *Store) History() *HistoryRepository  { return &HistoryRepository{v: s.auto()} }
func (s *Store) Clients() *ClientRepository   { return &ClientRepository{v: s.auto()} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{v: s.auto()} }

func (s *Store) auto() *txView { return &txView{store: s} }

// txView acceso al estado: dentro de una tx usa data (ya protegido por el lock de RunSales);
// fuera toma el lock por operación.
type txView struct {
	store *Store
	data  *state
	inTx  bool
}

func (v *txView) repos() sales.SalesRepos {
	return sales.SalesRepos{
		Clients:  &ClientRepository{v: v},
		Sales:    &SaleRepository{v: v},
		History:  &HistoryRepository{v: v},
		Comments: &CommentRepository{v: v},
	}
}

func (v *txView) with(fn func(st *state) error) error {
	if v.inTx {
		return fn(v.data)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

// write cuenta escrituras transaccionales para la inyección de fallas.
func (v *txView) write(fn func(st *state) error) error {
	if v.inTx && v.store.failAt > 0 {
		v.store.writes++
		if v.store.writes == v.store.failAt {
			v.store.failAt = 0
			return v.store.failErr
		}
	}
	return v.with(fn)
}

var errClosed = errors.New("memory: contexto cancelado")

func checkCtx(ctx context.Context) error {
	if ctx.Err() != nil {
		return errClosed
	}
	return nil
}
