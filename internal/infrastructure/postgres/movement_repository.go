package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es solo-inserción: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `
	id, product_id, product_name, type, quantity, converted_quantity,
	unit_id, base_unit, reference, notes, created_by,
	container_id, container_status, remaining_quantity, created_at`

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	containerID := nullIfEmpty(m.ContainerID)
	containerStatus := nullIfEmpty(m.ContainerStatus)
	createdBy := nullIfEmpty(m.CreatedBy)
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.ProductName, m.Type, m.Quantity, m.ConvertedQuantity,
		m.UnitID, m.BaseUnit, m.Reference, m.Notes, createdBy,
		containerID, containerStatus, m.RemainingQuantity, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByReference devuelve los movimientos de una referencia en orden de creación.
func (r *MovementRepo) ListByReference(reference string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE reference = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, reference)
	if err != nil {
		return nil, fmt.Errorf("list by reference: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByReferenceAndTypes filtra además por tipo (consulta del guard de
// idempotencia y de la localización de originales en la reversa).
func (r *MovementRepo) ListByReferenceAndTypes(reference string, types []string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE reference = $1 AND type = ANY($2)
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, reference, types)
	if err != nil {
		return nil, fmt.Errorf("list by reference and types: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var containerID, containerStatus, createdBy *string
		var remaining *decimal.Decimal
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.Quantity, &m.ConvertedQuantity,
			&m.UnitID, &m.BaseUnit, &m.Reference, &m.Notes, &createdBy,
			&containerID, &containerStatus, &remaining, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		if containerID != nil {
			m.ContainerID = *containerID
		}
		if containerStatus != nil {
			m.ContainerStatus = *containerStatus
		}
		m.RemainingQuantity = remaining
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
