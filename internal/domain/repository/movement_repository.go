package repository

import (
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Los movimientos solo se insertan y se consultan; nunca se actualizan ni se
// eliminan.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListByReference devuelve los movimientos de una referencia en orden de
	// creación.
	ListByReference(reference string) ([]*entity.Movement, error)
	// ListByReferenceAndTypes filtra además por tipo de movimiento. Es la
	// consulta del guard de idempotencia y de la localización de originales
	// en la reversa.
	ListByReferenceAndTypes(reference string, types []string) ([]*entity.Movement, error)
	// ListByProduct lista movimientos de un producto (auditoría/reportes).
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
}
