// Package events emite los eventos del motor de inventario como registros
// estructurados de zerolog, con conteos y duraciones listos para agregarse
// en la plataforma de logs.
package events

import (
	"context"
	"time"

	"github.com/jhoicas/Esencia-api/internal/application/inventory"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/pkg/logger"
)

var _ inventory.EventRecorder = (*LogRecorder)(nil)

// LogRecorder implementa EventRecorder sobre el logger de la aplicación.
type LogRecorder struct {
	log *logger.Logger
}

func NewLogRecorder(log *logger.Logger) *LogRecorder {
	return &LogRecorder{log: log.Component("inventory-events")}
}

func (r *LogRecorder) MovementRecorded(_ context.Context, m *entity.Movement) {
	ev := r.log.Info().
		Str("event", "movement_recorded").
		Str("movement_id", m.ID).
		Str("product_id", m.ProductID).
		Str("product_name", m.ProductName).
		Str("type", m.Type).
		Str("reference", m.Reference).
		Str("quantity", m.Quantity.String()).
		Str("converted_quantity", m.ConvertedQuantity.String())
	if m.ContainerID != "" {
		ev = ev.Str("container_id", m.ContainerID).Str("container_status", m.ContainerStatus)
	}
	if m.RemainingQuantity != nil {
		ev = ev.Str("remaining_quantity", m.RemainingQuantity.String())
	}
	ev.Msg("movimiento registrado")
}

func (r *LogRecorder) DeductionCompleted(_ context.Context, reference string, movements, errors, warnings int, elapsed time.Duration) {
	r.log.Info().
		Str("event", "deduction_completed").
		Str("reference", reference).
		Int("movements", movements).
		Int("errors", errors).
		Int("warnings", warnings).
		Dur("elapsed", elapsed).
		Msg("descuento de inventario completado")
}

func (r *LogRecorder) ReversalCompleted(_ context.Context, reference string, originals, reversed, errors int, elapsed time.Duration) {
	r.log.Info().
		Str("event", "reversal_completed").
		Str("reference", reference).
		Int("original_movements", originals).
		Int("reversed", reversed).
		Int("errors", errors).
		Dur("elapsed", elapsed).
		Msg("reversa de inventario completada")
}
