package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*Catalog)(nil)

// Catalog planes, promociones y empresas de origen en memoria.
type Catalog struct {
	mu        sync.RWMutex
	plans     map[string]entity.Plan
	promos    map[string]entity.Promotion
	companies map[string]entity.OriginCompany
}

func NewCatalog() *Catalog {
	return &Catalog{
		plans:     map[string]entity.Plan{},
		promos:    map[string]entity.Promotion{},
		companies: map[string]entity.OriginCompany{},
	}
}

func (c *Catalog) AddCompany(company entity.OriginCompany) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.companies[company.ID] = company
}

func (c *Catalog) AddPlan(plan entity.Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[plan.ID] = plan
}

func (c *Catalog) AddPromotion(promo entity.Promotion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.promos[promo.ID] = promo
}

func (c *Catalog) GetPlan(_ context.Context, id string) (*entity.Plan, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.plans[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (c *Catalog) GetPromotion(_ context.Context, id string) (*entity.Promotion, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.promos[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (c *Catalog) GetOriginCompany(_ context.Context, id string) (*entity.OriginCompany, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if oc, ok := c.companies[id]; ok {
		return &oc, nil
	}
	return nil, nil
}
