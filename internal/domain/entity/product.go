package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un contenedor físico parcial.
const (
	ContainerStatusFull     = "full"
	ContainerStatusPartial  = "partial"
	ContainerStatusOversold = "oversold" // remanente negativo: se vendió sin stock
	ContainerStatusEmpty    = "empty"
)

// ContainerSale entrada del historial de ventas de un contenedor.
type ContainerSale struct {
	Reference string          `json:"reference"`
	Quantity  decimal.Decimal `json:"quantity"`
	UserID    string          `json:"user_id,omitempty"`
	SoldAt    time.Time       `json:"sold_at"`
}

// Container es un contenedor físico abierto (parcial) de un producto volumétrico.
// Remaining solo puede ser negativo cuando Status es "oversold"; la transición
// partial -> empty ocurre exactamente cuando Remaining llega a 0.
type Container struct {
	ID          string          `json:"id"`
	Remaining   decimal.Decimal `json:"remaining"`
	Status      string          `json:"status"`
	OpenedAt    time.Time       `json:"opened_at"`
	SaleHistory []ContainerSale `json:"sale_history,omitempty"`
}

// Product representa un producto con su snapshot de stock.
//
// PartialContainers es una secuencia ORDENADA: la posición en la lista es la
// prioridad de asignación (el abierto más antiguo primero). Ese orden es la
// cola FIFO del asignador y debe preservarse en toda mutación; reordenarla
// rompe la semántica FIFO/FEFO en silencio.
type Product struct {
	ID   string
	SKU  string
	Name string

	UnitID   string
	BaseUnit string

	// Contadores agregados. Pueden ser negativos: el sobrevendido es un estado
	// válido que otra herramienta concilia después.
	CurrentStock   decimal.Decimal
	AvailableStock decimal.Decimal

	// Estado de contenedores para productos volumétricos. ContainerCapacity en
	// cero significa que el producto no maneja contenedores.
	ContainerCapacity decimal.Decimal
	ContainersFull    int
	PartialContainers []Container

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TracksContainers indica si el producto maneja contenedores físicos.
func (p *Product) TracksContainers() bool {
	return p.ContainerCapacity.GreaterThan(decimal.Zero)
}

// FindContainer busca un contenedor parcial por ID. Devuelve nil si no existe.
func (p *Product) FindContainer(containerID string) *Container {
	for i := range p.PartialContainers {
		if p.PartialContainers[i].ID == containerID {
			return &p.PartialContainers[i]
		}
	}
	return nil
}
