package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/pkg/logger"
)

// ItemHandler procesa un ítem de venta dentro de la transacción de BD activa
// y devuelve los movimientos producidos (posiblemente ninguno).
type ItemHandler func(ctx context.Context, sc Scope, tx *entity.Transaction, item entity.TransactionItem, actor string) (ItemOutcome, error)

// ItemRouter despacha cada ítem según su tipo declarado mediante un registro
// itemType -> handler. El conjunto de tipos queda abierto a extensión sin
// tocar el despachador; un tipo ausente o desconocido cae al handler por
// defecto (producto directo) con una advertencia.
type ItemRouter struct {
	handlers map[string]ItemHandler
	fallback ItemHandler
	log      *logger.Logger
}

// NewItemRouter construye un router vacío con el handler por defecto dado.
func NewItemRouter(fallback ItemHandler, log *logger.Logger) *ItemRouter {
	return &ItemRouter{
		handlers: make(map[string]ItemHandler),
		fallback: fallback,
		log:      log,
	}
}

// Register asocia un tipo de ítem a su handler. El último registro gana.
func (r *ItemRouter) Register(itemType string, h ItemHandler) {
	r.handlers[itemType] = h
}

// Route despacha el ítem a su handler. Los errores (ej. producto inexistente)
// suben al orquestador, que los registra contra el ítem y continúa con el
// resto del lote.
func (r *ItemRouter) Route(ctx context.Context, sc Scope, tx *entity.Transaction, item entity.TransactionItem, actor string) (ItemOutcome, error) {
	if h, ok := r.handlers[item.ItemType]; ok {
		return h(ctx, sc, tx, item, actor)
	}

	r.log.Warn().
		Str("reference", tx.TransactionNumber).
		Str("item_type", item.ItemType).
		Str("product_id", item.ProductID).
		Msg("tipo de ítem desconocido; se procesa como producto directo")

	out, err := r.fallback(ctx, sc, tx, item, actor)
	if err != nil {
		return out, err
	}
	out.Warnings = append(out.Warnings,
		fmt.Sprintf("tipo de ítem %q desconocido; procesado como producto directo", item.ItemType))
	return out, nil
}
