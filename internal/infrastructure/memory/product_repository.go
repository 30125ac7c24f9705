package memory

import (
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productRecord struct {
	product *entity.Product
}

// ProductRepo productos en memoria. Devuelve copias para que el llamador
// mute libremente y persista después con SaveStock, igual que contra la base.
type ProductRepo struct {
	store *Store
	items map[string]*productRecord
}

// Seed registra un producto inicial. Solo para preparar tests.
func (r *ProductRepo) Seed(p *entity.Product) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.items[p.ID] = &productRecord{product: copyProduct(p)}
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(rec.product), nil
}

// GetForUpdate no bloquea nada en memoria; el candado del store serializa.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) SaveStock(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.items[p.ID]
	if !ok {
		return entityNotFound(p.ID)
	}
	stored := rec.product
	stored.CurrentStock = p.CurrentStock
	stored.AvailableStock = p.AvailableStock
	stored.ContainersFull = p.ContainersFull
	stored.PartialContainers = copyContainers(p.PartialContainers)
	return nil
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	c.PartialContainers = copyContainers(p.PartialContainers)
	return &c
}

func copyContainers(in []entity.Container) []entity.Container {
	if in == nil {
		return nil
	}
	out := make([]entity.Container, len(in))
	for i, ct := range in {
		out[i] = ct
		out[i].SaleHistory = append([]entity.ContainerSale(nil), ct.SaleHistory...)
	}
	return out
}
