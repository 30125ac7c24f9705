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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo acceso a productos y su estado de stock en PostgreSQL.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, sku, name, unit_id, base_unit, current_stock, available_stock,
	container_capacity, containers_full, partial_containers, created_at, updated_at`

// GetByID devuelve el producto o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate carga el producto con bloqueo de fila. Solo tiene sentido
// dentro de una transacción; fuera de ella el FOR UPDATE no retiene nada.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// SaveStock persiste contadores y contenedores parciales. El orden del
// slice se conserva tal cual en el JSONB: es la cola FIFO de consumo.
func (r *ProductRepo) SaveStock(p *entity.Product) error {
	partials, err := json.Marshal(p.PartialContainers)
	if err != nil {
		return fmt.Errorf("marshal partial containers: %w", err)
	}
	query := `
		UPDATE products
		SET current_stock = $2,
		    available_stock = $3,
		    containers_full = $4,
		    partial_containers = $5,
		    updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.CurrentStock, p.AvailableStock, p.ContainersFull, partials)
	if err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save stock %s: no se actualizó ninguna fila", p.ID)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var partials []byte
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.UnitID, &p.BaseUnit, &p.CurrentStock, &p.AvailableStock,
		&p.ContainerCapacity, &p.ContainersFull, &partials, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if len(partials) > 0 {
		if err := json.Unmarshal(partials, &p.PartialContainers); err != nil {
			return nil, fmt.Errorf("unmarshal partial containers: %w", err)
		}
	}
	return &p, nil
}
