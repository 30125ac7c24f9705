package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
)

// applyMovement aplica la cantidad convertida del movimiento a los contadores
// agregados del producto. Las devoluciones suman; todo lo demás resta. No hay
// piso: el stock negativo es un estado válido e intencional (sobreventa que
// otra herramienta concilia después).
func applyMovement(p *entity.Product, m *entity.Movement) {
	if m.Type == entity.MovementTypeReturn {
		p.CurrentStock = p.CurrentStock.Add(m.ConvertedQuantity)
		p.AvailableStock = p.AvailableStock.Add(m.ConvertedQuantity)
		return
	}
	p.CurrentStock = p.CurrentStock.Sub(m.ConvertedQuantity)
	p.AvailableStock = p.AvailableStock.Sub(m.ConvertedQuantity)
}

// persistMovement confirma snapshot de stock y registro del movimiento juntos.
// Debe invocarse dentro de la transacción de BD activa para que "movimiento
// escrito" y "stock actualizado" no puedan divergir ante una caída.
func persistMovement(sc Scope, p *entity.Product, m *entity.Movement) error {
	applyMovement(p, m)
	if err := sc.Products.SaveStock(p); err != nil {
		return fmt.Errorf("guardar stock de %s: %w", p.ID, err)
	}
	if err := sc.Movements.Create(m); err != nil {
		return fmt.Errorf("registrar movimiento de %s: %w", p.ID, err)
	}
	return nil
}

// newMovement arma un movimiento de deducción con los campos comunes.
// convertedQuantity cae a quantity cuando el ítem no trae conversión.
func newMovement(p *entity.Product, movementType string, quantity, converted decimal.Decimal, unitID, baseUnit, reference, notes, actor string, now time.Time) *entity.Movement {
	if converted.IsZero() {
		converted = quantity
	}
	if unitID == "" {
		unitID = p.UnitID
	}
	if baseUnit == "" {
		baseUnit = p.BaseUnit
	}
	return &entity.Movement{
		ID:                uuid.New().String(),
		ProductID:         p.ID,
		ProductName:       p.Name,
		Type:              movementType,
		Quantity:          quantity,
		ConvertedQuantity: converted,
		UnitID:            unitID,
		BaseUnit:          baseUnit,
		Reference:         reference,
		Notes:             notes,
		CreatedBy:         actor,
		CreatedAt:         now,
	}
}
