package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo combos de venta en PostgreSQL, con las líneas como JSONB.
type BundleRepo struct {
	q Querier
}

func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// GetByID devuelve el combo o (nil, nil) si no existe.
func (r *BundleRepo) GetByID(id string) (*entity.Bundle, error) {
	query := `
		SELECT id, name, lines, created_at, updated_at
		FROM bundles
		WHERE id = $1`
	var b entity.Bundle
	var lines []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &lines, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bundle: %w", err)
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &b.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal bundle lines: %w", err)
		}
	}
	return &b, nil
}
