package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

var _ repository.BlendTemplateRepository = (*BlendTemplateRepo)(nil)

// BlendTemplateRepo recetas de mezcla fija en PostgreSQL. Los ingredientes
// viven como JSONB en la misma fila.
type BlendTemplateRepo struct {
	q Querier
}

func NewBlendTemplateRepository(q Querier) *BlendTemplateRepo {
	return &BlendTemplateRepo{q: q}
}

// GetByID devuelve la receta o (nil, nil) si no existe.
func (r *BlendTemplateRepo) GetByID(id string) (*entity.BlendTemplate, error) {
	query := `
		SELECT id, name, ingredients, usage_count, last_used, created_at, updated_at
		FROM blend_templates
		WHERE id = $1`
	var t entity.BlendTemplate
	var ingredients []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &ingredients, &t.UsageCount, &t.LastUsed, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blend template: %w", err)
	}
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &t.Ingredients); err != nil {
			return nil, fmt.Errorf("unmarshal ingredients: %w", err)
		}
	}
	return &t, nil
}

// RecordUsage acumula el contador de uso y actualiza la última fecha.
// Se llama tras consumir la receta y no se revierte en una reversa.
func (r *BlendTemplateRepo) RecordUsage(id string, delta decimal.Decimal, usedAt time.Time) error {
	query := `
		UPDATE blend_templates
		SET usage_count = usage_count + $2,
		    last_used = $3,
		    updated_at = NOW()
		WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, delta, usedAt); err != nil {
		return fmt.Errorf("record blend usage: %w", err)
	}
	return nil
}
