package inventory

import (
	"fmt"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

// IdempotencyGuard consulta el libro de movimientos ANTES de hacer cualquier
// trabajo: si una referencia ya tiene actividad, el procesamiento se salta
// completo y se devuelve lo existente. Es la defensa contra requests
// reintentados que volverían a descontar stock.
type IdempotencyGuard struct {
	movements repository.MovementRepository
}

// NewIdempotencyGuard construye el guard sobre el repositorio de movimientos.
func NewIdempotencyGuard(movements repository.MovementRepository) *IdempotencyGuard {
	return &IdempotencyGuard{movements: movements}
}

// ExistingDeduction devuelve los movimientos que afectan stock ya registrados
// bajo la referencia de una transacción. Lista no vacía = ya procesada.
func (g *IdempotencyGuard) ExistingDeduction(reference string) ([]*entity.Movement, error) {
	movs, err := g.movements.ListByReferenceAndTypes(reference, entity.StockAffectingTypes())
	if err != nil {
		return nil, fmt.Errorf("consultar deducciones previas de %s: %w", reference, err)
	}
	return movs, nil
}

// ExistingReversal devuelve las devoluciones ya registradas bajo
// CANCEL-<transactionNumber>. Lista no vacía = reversa ya aplicada.
func (g *IdempotencyGuard) ExistingReversal(transactionNumber string) ([]*entity.Movement, error) {
	ref := entity.ReversalReference(transactionNumber)
	movs, err := g.movements.ListByReferenceAndTypes(ref, []string{entity.MovementTypeReturn})
	if err != nil {
		return nil, fmt.Errorf("consultar reversas previas de %s: %w", ref, err)
	}
	return movs, nil
}
