package memory

import (
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

type bundleRecord struct {
	bundle *entity.Bundle
}

// BundleRepo combos de venta en memoria.
type BundleRepo struct {
	store *Store
	items map[string]*bundleRecord
}

// Seed registra un combo inicial. Solo para preparar tests.
func (r *BundleRepo) Seed(b *entity.Bundle) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.items[b.ID] = &bundleRecord{bundle: copyBundle(b)}
}

func (r *BundleRepo) GetByID(id string) (*entity.Bundle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return copyBundle(rec.bundle), nil
}

func copyBundle(b *entity.Bundle) *entity.Bundle {
	c := *b
	c.Lines = append([]entity.BundleLine(nil), b.Lines...)
	return &c
}
