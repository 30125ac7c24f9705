package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

var _ repository.BlendTemplateRepository = (*BlendTemplateRepo)(nil)

type blendRecord struct {
	template *entity.BlendTemplate
}

// BlendTemplateRepo recetas de mezcla fija en memoria.
type BlendTemplateRepo struct {
	store *Store
	items map[string]*blendRecord
}

// Seed registra una receta inicial. Solo para preparar tests.
func (r *BlendTemplateRepo) Seed(t *entity.BlendTemplate) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.items[t.ID] = &blendRecord{template: copyBlend(t)}
}

func (r *BlendTemplateRepo) GetByID(id string) (*entity.BlendTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return copyBlend(rec.template), nil
}

func (r *BlendTemplateRepo) RecordUsage(id string, delta decimal.Decimal, usedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.items[id]
	if !ok {
		return entityNotFound(id)
	}
	rec.template.UsageCount = rec.template.UsageCount.Add(delta)
	used := usedAt
	rec.template.LastUsed = &used
	return nil
}

func copyBlend(t *entity.BlendTemplate) *entity.BlendTemplate {
	c := *t
	c.Ingredients = append([]entity.BlendIngredient(nil), t.Ingredients...)
	if t.LastUsed != nil {
		lu := *t.LastUsed
		c.LastUsed = &lu
	}
	return &c
}

func entityNotFound(id string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}
