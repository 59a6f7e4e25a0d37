package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository    = (*SaleRepository)(nil)
	_ repository.HistoryRepository = (*HistoryRepository)(nil)
	_ repository.ClientRepository  = (*ClientRepository)(nil)
	_ repository.CommentRepository = (*CommentRepository)(nil)
)

// SaleRepository ventas en memoria. La venta se guarda por valor; Variant y Shipment se
// agregan con CreateVariant y CreateShipment.
type SaleRepository struct{ v *txView }

func (r *SaleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.codes[sale.ReferenceCode]; ok {
			return domain.ErrDuplicateReferenceCode
		}
		st.nextSaleID++
		sale.ID = st.nextSaleID
		stored := *sale
		stored.Variant = nil
		stored.Shipment = nil
		st.sales[sale.ID] = stored
		st.codes[sale.ReferenceCode] = sale.ID
		return nil
	})
}

func (r *SaleRepository) CreateVariant(ctx context.Context, saleID int64, variant entity.ProductVariant) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		s, ok := st.sales[saleID]
		if !ok || s.Variant != nil {
			return domain.ErrInvalidInput
		}
		s.Variant = variant
		st.sales[saleID] = s
		return nil
	})
}

func (r *SaleRepository) CreateShipment(ctx context.Context, shipment *entity.Shipment) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		s, ok := st.sales[shipment.SaleID]
		if !ok || s.Shipment != nil {
			return domain.ErrInvalidInput
		}
		cp := *shipment
		s.Shipment = &cp
		st.sales[shipment.SaleID] = s
		return nil
	})
}

func (r *SaleRepository) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out *entity.Sale
	err := r.v.with(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return nil
		}
		if s.Shipment != nil {
			cp := *s.Shipment
			s.Shipment = &cp
		}
		out = &s
		return nil
	})
	return out, err
}

// Count cantidad de ventas confirmadas (tests de atomicidad).
func (r *SaleRepository) Count() int {
	n := 0
	_ = r.v.with(func(st *state) error {
		n = len(st.sales)
		return nil
	})
	return n
}

// HistoryRepository historiales en memoria; (sale_id, machine, seq) único.
type HistoryRepository struct{ v *txView }

func (r *HistoryRepository) Latest(ctx context.Context, saleID int64, machine entity.Machine, _ bool) (*entity.StatusEntry, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out *entity.StatusEntry
	err := r.v.with(func(st *state) error {
		entries := st.history[streamKey{saleID, machine}]
		if len(entries) > 0 {
			e := entries[len(entries)-1]
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *HistoryRepository) Append(ctx context.Context, entry *entity.StatusEntry) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		k := streamKey{entry.SaleID, entry.Machine}
		if _, ok := st.sales[entry.SaleID]; !ok {
			return domain.ErrNotFound
		}
		entries := st.history[k]
		if int64(len(entries))+1 != entry.Seq {
			return domain.ErrConcurrentTransition
		}
		st.history[k] = append(entries, *entry)
		return nil
	})
}

func (r *HistoryRepository) List(ctx context.Context, saleID int64, machine entity.Machine) ([]*entity.StatusEntry, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out []*entity.StatusEntry
	err := r.v.with(func(st *state) error {
		for _, e := range st.history[streamKey{saleID, machine}] {
			e := e
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

// ClientRepository clientes en memoria, únicos por (tipo, número) de documento.
// Create con un documento ya registrado deja en c.ID el cliente existente.
type ClientRepository struct{ v *txView }

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		for _, existing := range st.clients {
			if existing.DocumentType == c.DocumentType && existing.DocumentNumber == c.DocumentNumber {
				c.ID = existing.ID
				return nil
			}
		}
		st.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out *entity.Client
	err := r.v.with(func(st *state) error {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepository) GetByDocument(ctx context.Context, documentType, documentNumber string) (*entity.Client, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out *entity.Client
	err := r.v.with(func(st *state) error {
		for _, c := range st.clients {
			if c.DocumentType == documentType && c.DocumentNumber == documentNumber {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Count cantidad de clientes confirmados.
func (r *ClientRepository) Count() int {
	n := 0
	_ = r.v.with(func(st *state) error {
		n = len(st.clients)
		return nil
	})
	return n
}

// CommentRepository comentarios en memoria.
type CommentRepository struct{ v *txView }

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		st.nextCommentID++
		c.ID = st.nextCommentID
		st.comments[c.SaleID] = append(st.comments[c.SaleID], *c)
		return nil
	})
}

func (r *CommentRepository) ListBySale(ctx context.Context, saleID int64) ([]*entity.Comment, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out []*entity.Comment
	err := r.v.with(func(st *state) error {
		for _, c := range st.comments[saleID] {
			c := c
			out = append(out, &c)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}
