package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
)

// TransactionItemRequest una línea de venta tal como la envía el colaborador
// de transacciones.
type TransactionItemRequest struct {
	ProductID         string          `json:"product_id"`
	ItemType          string          `json:"item_type"`
	SaleType          string          `json:"sale_type,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	ConvertedQuantity decimal.Decimal `json:"converted_quantity,omitempty"`
	UnitID            string          `json:"unit_id,omitempty"`
	BaseUnit          string          `json:"base_unit,omitempty"`
	ContainerID       string          `json:"container_id,omitempty"`
}

// DeductTransactionRequest body para POST /api/inventory/deductions.
type DeductTransactionRequest struct {
	TransactionNumber string                   `json:"transaction_number"`
	Items             []TransactionItemRequest `json:"items"`
}

// ToEntity convierte el request al modelo de dominio.
func (r DeductTransactionRequest) ToEntity() *entity.Transaction {
	items := make([]entity.TransactionItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.TransactionItem{
			ProductID:         it.ProductID,
			ItemType:          it.ItemType,
			SaleType:          it.SaleType,
			Quantity:          it.Quantity,
			ConvertedQuantity: it.ConvertedQuantity,
			UnitID:            it.UnitID,
			BaseUnit:          it.BaseUnit,
			ContainerID:       it.ContainerID,
		})
	}
	return &entity.Transaction{TransactionNumber: r.TransactionNumber, Items: items}
}

// MovementDTO un movimiento del libro para respuestas HTTP.
type MovementDTO struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	ProductName       string           `json:"product_name,omitempty"`
	Type              string           `json:"type"`
	Quantity          decimal.Decimal  `json:"quantity"`
	ConvertedQuantity decimal.Decimal  `json:"converted_quantity"`
	UnitID            string           `json:"unit_id,omitempty"`
	BaseUnit          string           `json:"base_unit,omitempty"`
	Reference         string           `json:"reference"`
	Notes             string           `json:"notes,omitempty"`
	CreatedBy         string           `json:"created_by,omitempty"`
	ContainerID       string           `json:"container_id,omitempty"`
	ContainerStatus   string           `json:"container_status,omitempty"`
	RemainingQuantity *decimal.Decimal `json:"remaining_quantity,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// FromMovement mapea la entidad al DTO.
func FromMovement(m *entity.Movement) MovementDTO {
	return MovementDTO{
		ID:                m.ID,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		Type:              m.Type,
		Quantity:          m.Quantity,
		ConvertedQuantity: m.ConvertedQuantity,
		UnitID:            m.UnitID,
		BaseUnit:          m.BaseUnit,
		Reference:         m.Reference,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		ContainerID:       m.ContainerID,
		ContainerStatus:   m.ContainerStatus,
		RemainingQuantity: m.RemainingQuantity,
		CreatedAt:         m.CreatedAt,
	}
}

// FromMovements mapea una lista de movimientos. Devuelve slice vacío (no nil)
// para que el JSON siempre traiga un arreglo.
func FromMovements(movs []*entity.Movement) []MovementDTO {
	out := make([]MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, FromMovement(m))
	}
	return out
}

// DeductionResponse resultado de una deducción. Success indica que el lote
// corrió completo; los ítems fallidos van en errors.
type DeductionResponse struct {
	Success   bool          `json:"success"`
	Movements []MovementDTO `json:"movements"`
	Errors    []string      `json:"errors"`
	Warnings  []string      `json:"warnings"`
}

// ReversalResponse resultado de una reversa.
type ReversalResponse struct {
	Success               bool          `json:"success"`
	ReversedMovements     []MovementDTO `json:"reversed_movements"`
	Errors                []string      `json:"errors"`
	Warnings              []string      `json:"warnings"`
	OriginalMovementCount int           `json:"original_movement_count"`
	ReversedCount         int           `json:"reversed_count"`
}

// ContainerDTO contenedor parcial en el snapshot de stock.
type ContainerDTO struct {
	ID        string          `json:"id"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
	OpenedAt  time.Time       `json:"opened_at"`
}

// ProductStockResponse snapshot de stock para GET /api/products/:id/stock.
type ProductStockResponse struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	AvailableStock    decimal.Decimal `json:"available_stock"`
	ContainerCapacity decimal.Decimal `json:"container_capacity,omitempty"`
	ContainersFull    int             `json:"containers_full"`
	PartialContainers []ContainerDTO  `json:"partial_containers"`
}
