package memory

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria, solo-inserción, en orden
// de llegada.
type MovementRepo struct {
	store *Store
	items []*entity.Movement
}

func (r *MovementRepo) Create(m *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.items = append(r.items, copyMovement(m))
	return nil
}

func (r *MovementRepo) ListByReference(reference string) ([]*entity.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.items {
		if m.Reference == reference {
			out = append(out, copyMovement(m))
		}
	}
	return out, nil
}

func (r *MovementRepo) ListByReferenceAndTypes(reference string, types []string) ([]*entity.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wanted := map[string]bool{}
	for _, t := range types {
		wanted[t] = true
	}
	var out []*entity.Movement
	for _, m := range r.items {
		if m.Reference == reference && wanted[m.Type] {
			out = append(out, copyMovement(m))
		}
	}
	return out, nil
}

func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*entity.Movement
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ProductID == productID {
			matched = append(matched, r.items[i])
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]*entity.Movement, 0, len(matched))
	for _, m := range matched {
		out = append(out, copyMovement(m))
	}
	return out, nil
}

func copyMovement(m *entity.Movement) *entity.Movement {
	c := *m
	if m.RemainingQuantity != nil {
		v := *m.RemainingQuantity
		c.RemainingQuantity = &v
	}
	return &c
}
