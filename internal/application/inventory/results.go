package inventory

import "github.com/jhoicas/Esencia-api/internal/domain/entity"

// DeductionResult resultado de procesar una transacción completa.
// Success significa que el lote corrió hasta el final, NO que todos los ítems
// salieron bien: el caller debe inspeccionar Errors.
type DeductionResult struct {
	Success   bool
	Movements []*entity.Movement
	Errors    []string
	Warnings  []string
}

// ReversalResult resultado de revertir una transacción cancelada.
type ReversalResult struct {
	Success               bool
	ReversedMovements     []*entity.Movement
	Errors                []string
	Warnings              []string
	OriginalMovementCount int
	ReversedCount         int
}

// ItemOutcome lo que produce el procesamiento de UN ítem de venta: cero o más
// movimientos ya persistidos, más advertencias no fatales.
type ItemOutcome struct {
	Movements []*entity.Movement
	Warnings  []string
}
