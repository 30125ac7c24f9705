package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeSale                  = "sale"                    // venta directa de producto
	MovementTypeFixedBlend            = "fixed_blend"             // ingrediente descontado por venta de mezcla fija
	MovementTypeBundleSale            = "bundle_sale"             // producto descontado por venta de combo
	MovementTypeBundleBlendIngredient = "bundle_blend_ingredient" // ingrediente de mezcla anidada en un combo
	MovementTypeBlendIngredient       = "blend_ingredient"        // ingrediente descontado directamente
	MovementTypeCustomBlend           = "custom_blend"            // mezcla personalizada (descontada por otro flujo)
	MovementTypeReturn                = "return"                  // devolución por cancelación
)

// CancelPrefix prefijo literal de la referencia de reversa.
// El formato "CANCEL-<número de transacción>" es un contrato de compatibilidad
// y no debe cambiar.
const CancelPrefix = "CANCEL-"

// ReversalReference construye la referencia de una reversa a partir del número
// de la transacción original.
func ReversalReference(transactionNumber string) string {
	return CancelPrefix + transactionNumber
}

// StockAffectingTypes devuelve los tipos de movimiento que afectan stock.
// Es el conjunto que consulta el guard de idempotencia y el que se considera
// reversible; custom_blend y return quedan fuera.
func StockAffectingTypes() []string {
	return []string{
		MovementTypeSale,
		MovementTypeFixedBlend,
		MovementTypeBundleSale,
		MovementTypeBundleBlendIngredient,
		MovementTypeBlendIngredient,
	}
}

// Movement es un hecho inmutable del libro de inventario: una vez persistido
// nunca se actualiza ni se elimina (una reversa crea registros nuevos, jamás
// edita los viejos).
type Movement struct {
	ID                string
	ProductID         string
	ProductName       string
	Type              string
	Quantity          decimal.Decimal // cantidad en la unidad de venta
	ConvertedQuantity decimal.Decimal // cantidad expresada en la unidad base del producto
	UnitID            string
	BaseUnit          string
	Reference         string // número de transacción, o CANCEL-<número> en reversas
	Notes             string
	CreatedBy         string

	// Anotaciones de contenedor (solo ventas volumétricas).
	ContainerID       string
	ContainerStatus   string
	RemainingQuantity *decimal.Decimal

	CreatedAt time.Time
}

// AffectsStock indica si el movimiento pertenece al conjunto que afecta stock.
func (m *Movement) AffectsStock() bool {
	switch m.Type {
	case MovementTypeSale, MovementTypeFixedBlend, MovementTypeBundleSale,
		MovementTypeBundleBlendIngredient, MovementTypeBlendIngredient:
		return true
	}
	return false
}
