// Package memory implementa los repositorios del dominio sobre mapas en
// memoria. Se usa en tests y demos; el comportamiento observable imita al
// adaptador de PostgreSQL (copias defensivas, (nil, nil) cuando no existe).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Esencia-api/internal/application/inventory"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

// Store agrupa los repositorios en memoria compartiendo un mismo candado.
type Store struct {
	mu        sync.Mutex
	movements *MovementRepo
	products  *ProductRepo
	blends    *BlendTemplateRepo
	bundles   *BundleRepo
}

func NewStore() *Store {
	s := &Store{}
	s.movements = &MovementRepo{store: s}
	s.products = &ProductRepo{store: s, items: map[string]*productRecord{}}
	s.blends = &BlendTemplateRepo{store: s, items: map[string]*blendRecord{}}
	s.bundles = &BundleRepo{store: s, items: map[string]*bundleRecord{}}
	return s
}

func (s *Store) Movements() *MovementRepo   { return s.movements }
func (s *Store) Products() *ProductRepo     { return s.products }
func (s *Store) Blends() *BlendTemplateRepo { return s.blends }
func (s *Store) Bundles() *BundleRepo       { return s.bundles }

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn contra los repositorios del store. No hay transacción real:
// el candado del store serializa el acceso, suficiente para tests.
func (s *Store) Run(_ context.Context, fn func(
	movements repository.MovementRepository,
	products repository.ProductRepository,
	blends repository.BlendTemplateRepository,
	bundles repository.BundleRepository,
) error) error {
	return fn(s.movements, s.products, s.blends, s.bundles)
}

// Scope devuelve los repositorios como ámbito de aplicación, para ejercitar
// los casos de uso en su variante de sesión ambiente.
func (s *Store) Scope() inventory.Scope {
	return inventory.Scope{
		Movements: s.movements,
		Products:  s.products,
		Blends:    s.blends,
		Bundles:   s.bundles,
	}
}
