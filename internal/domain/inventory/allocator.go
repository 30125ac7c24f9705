// Package inventory contiene la lógica pura de asignación de contenedores.
// No toca persistencia: muta el snapshot en memoria y el caso de uso decide
// cuándo guardarlo.
package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
)

// Allocation resultado de asignar una venta volumétrica a un contenedor.
type Allocation struct {
	ContainerID string
	Status      string          // estado del contenedor DESPUÉS de la deducción
	Remaining   decimal.Decimal // remanente después de la deducción
	Opened      bool            // true si se abrió un contenedor sellado
	Oversold    bool            // true si se creó un contenedor sintético sin stock
}

// AllocationInput datos de la venta que consume el asignador.
type AllocationInput struct {
	Quantity    decimal.Decimal
	ContainerID string // opcional: contenedor destino explícito
	Reference   string
	UserID      string
	Now         time.Time
}

// Allocate aplica la política FIFO/dirigida sobre los contenedores parciales
// del producto:
//
//  1. Con ContainerID explícito se descuenta de ese contenedor sin importar
//     su posición en la lista.
//  2. Sin contenedor explícito se recorre PartialContainers EN ORDEN (el
//     abierto más antiguo primero) y se descuenta del primero con remanente
//     positivo.
//  3. Si ningún abierto tiene remanente y hay sellados, se abre uno: baja
//     ContainersFull y se agrega un parcial nuevo al final de la lista.
//  4. Sin contenedores de ningún tipo se crea un parcial sintético con estado
//     "oversold" y remanente negativo: una venta nunca se bloquea por falta
//     de stock.
//
// Un contenedor cuyo remanente llega exactamente a 0 pasa a "empty"; queda en
// la lista como rastro de auditoría pero los recorridos futuros lo saltan.
func Allocate(p *entity.Product, in AllocationInput) (Allocation, error) {
	if in.ContainerID != "" {
		c := p.FindContainer(in.ContainerID)
		if c == nil {
			return Allocation{}, fmt.Errorf("%w: %s en producto %s", domain.ErrContainerNotFound, in.ContainerID, p.ID)
		}
		deductFrom(c, in)
		return allocationFrom(c), nil
	}

	for i := range p.PartialContainers {
		c := &p.PartialContainers[i]
		if !c.Remaining.GreaterThan(decimal.Zero) {
			continue
		}
		deductFrom(c, in)
		return allocationFrom(c), nil
	}

	if p.ContainersFull > 0 {
		p.ContainersFull--
		c := entity.Container{
			ID:        uuid.New().String(),
			Remaining: p.ContainerCapacity,
			Status:    entity.ContainerStatusPartial,
			OpenedAt:  in.Now,
		}
		p.PartialContainers = append(p.PartialContainers, c)
		opened := &p.PartialContainers[len(p.PartialContainers)-1]
		deductFrom(opened, in)
		a := allocationFrom(opened)
		a.Opened = true
		return a, nil
	}

	// Sobreventa: contenedor sintético con remanente negativo.
	c := entity.Container{
		ID:        uuid.New().String(),
		Remaining: in.Quantity.Neg(),
		Status:    entity.ContainerStatusOversold,
		OpenedAt:  in.Now,
		SaleHistory: []entity.ContainerSale{{
			Reference: in.Reference,
			Quantity:  in.Quantity,
			UserID:    in.UserID,
			SoldAt:    in.Now,
		}},
	}
	p.PartialContainers = append(p.PartialContainers, c)
	a := allocationFrom(&p.PartialContainers[len(p.PartialContainers)-1])
	a.Oversold = true
	return a, nil
}

// SellFull descuenta contenedores sellados vendidos completos (venta por
// unidades de un producto con contenedores). El contador puede quedar
// negativo, igual que el stock agregado.
func SellFull(p *entity.Product, count int) {
	p.ContainersFull -= count
}

// RestoreFull devuelve contenedores sellados por la reversa de una venta
// de unidades completas.
func RestoreFull(p *entity.Product, count int) {
	p.ContainersFull += count
}

// Restore devuelve cantidad a un contenedor por una reversa. Si el contenedor
// ya no existe en la lista solo se ajustan los contadores agregados (el caso
// de uso lo reporta como advertencia).
func Restore(p *entity.Product, containerID string, qty decimal.Decimal) (Allocation, bool) {
	c := p.FindContainer(containerID)
	if c == nil {
		return Allocation{}, false
	}
	c.Remaining = c.Remaining.Add(qty)
	c.Status = statusFor(c.Remaining)
	return allocationFrom(c), true
}

func deductFrom(c *entity.Container, in AllocationInput) {
	c.Remaining = c.Remaining.Sub(in.Quantity)
	c.Status = statusFor(c.Remaining)
	c.SaleHistory = append(c.SaleHistory, entity.ContainerSale{
		Reference: in.Reference,
		Quantity:  in.Quantity,
		UserID:    in.UserID,
		SoldAt:    in.Now,
	})
}

// statusFor deriva el estado desde el remanente: negativo = oversold,
// cero exacto = empty, positivo = partial.
func statusFor(remaining decimal.Decimal) string {
	switch {
	case remaining.IsNegative():
		return entity.ContainerStatusOversold
	case remaining.IsZero():
		return entity.ContainerStatusEmpty
	default:
		return entity.ContainerStatusPartial
	}
}

func allocationFrom(c *entity.Container) Allocation {
	return Allocation{
		ContainerID: c.ID,
		Status:      c.Status,
		Remaining:   c.Remaining,
	}
}
