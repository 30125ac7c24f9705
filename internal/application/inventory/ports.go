package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada movimiento y su mutación de stock se
// confirman como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		blendRepo repository.BlendTemplateRepository,
		bundleRepo repository.BundleRepository,
	) error) error
}

// Scope agrupa los repositorios atados a una misma transacción. Un caller con
// sesión ambiente propia puede construirlo y usar DeductInTx/ReverseInTx para
// que toda la venta quede en un solo commit.
type Scope struct {
	Movements repository.MovementRepository
	Products  repository.ProductRepository
	Blends    repository.BlendTemplateRepository
	Bundles   repository.BundleRepository
}

// EventRecorder emite eventos estructurados del motor (conteos y duraciones
// para operación, en lugar de logs de texto sueltos).
type EventRecorder interface {
	MovementRecorded(ctx context.Context, m *entity.Movement)
	DeductionCompleted(ctx context.Context, reference string, movements, errors, warnings int, elapsed time.Duration)
	ReversalCompleted(ctx context.Context, reference string, originals, reversed, errors int, elapsed time.Duration)
}

// NopRecorder descarta todos los eventos.
type NopRecorder struct{}

func (NopRecorder) MovementRecorded(context.Context, *entity.Movement) {}
func (NopRecorder) DeductionCompleted(context.Context, string, int, int, int, time.Duration) {
}
func (NopRecorder) ReversalCompleted(context.Context, string, int, int, int, time.Duration) {
}

// ReferenceClaimer reclama una referencia antes de procesarla para cerrar la
// ventana leer-luego-actuar del guard ante duplicados verdaderamente
// concurrentes. Es un refuerzo opcional: con claimer nulo el guard queda en
// su forma base de lectura previa.
type ReferenceClaimer interface {
	// Claim devuelve true si esta llamada ganó la referencia.
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
