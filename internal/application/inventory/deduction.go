package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Esencia-api/internal/domain"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Esencia-api/internal/domain/inventory"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
	"github.com/jhoicas/Esencia-api/pkg/logger"
)

// DeductionUseCase convierte una venta completada en movimientos de stock
// durables y auditables. Procesa los ítems en secuencia (nunca en paralelo:
// ítems posteriores no deben competir por los contadores del mismo producto
// dentro de la misma llamada), cada uno en su propia transacción de BD, y
// tolera fallas por ítem sin abortar el lote.
type DeductionUseCase struct {
	txRunner TxRunner
	guard    *IdempotencyGuard
	router   *ItemRouter
	resolver *CompositionResolver
	claimer  ReferenceClaimer // opcional; nil = guard base leer-luego-actuar
	events   EventRecorder
	log      *logger.Logger
}

// NewDeductionUseCase construye el orquestador y registra los handlers del
// router: product -> deducción directa, fixed_blend -> resolver de recetas,
// bundle -> resolver de combos, y los tipos sin impacto de inventario
// (custom_blend, miscellaneous, consultation, service) -> no-op. El handler
// por defecto para tipos desconocidos es la deducción directa.
func NewDeductionUseCase(
	txRunner TxRunner,
	guard *IdempotencyGuard,
	resolver *CompositionResolver,
	claimer ReferenceClaimer,
	events EventRecorder,
	log *logger.Logger,
) *DeductionUseCase {
	if events == nil {
		events = NopRecorder{}
	}
	uc := &DeductionUseCase{
		txRunner: txRunner,
		guard:    guard,
		resolver: resolver,
		claimer:  claimer,
		events:   events,
		log:      log,
	}
	uc.router = NewItemRouter(uc.handleProduct, log)
	uc.router.Register(entity.ItemTypeProduct, uc.handleProduct)
	uc.router.Register(entity.ItemTypeFixedBlend, uc.handleFixedBlend)
	uc.router.Register(entity.ItemTypeBundle, uc.handleBundle)
	// custom_blend: deducido por el colaborador de transacciones durante la
	// creación; devolver vacío aquí evita la doble deducción.
	uc.router.Register(entity.ItemTypeCustomBlend, uc.handleNoOp)
	uc.router.Register(entity.ItemTypeMisc, uc.handleNoOp)
	uc.router.Register(entity.ItemTypeConsultation, uc.handleNoOp)
	uc.router.Register(entity.ItemTypeService, uc.handleNoOp)
	return uc
}

// Router expone el registro de handlers para que un caller registre tipos de
// ítem adicionales sin tocar el despachador.
func (uc *DeductionUseCase) Router() *ItemRouter {
	return uc.router
}

// Deduct procesa todos los ítems de la transacción. Idempotente: si la
// referencia ya tiene movimientos que afectan stock se devuelven esos con una
// advertencia y no se toca nada. Solo retorna error ante fallas de
// infraestructura (almacén inalcanzable); las fallas de negocio por ítem van
// en Errors.
func (uc *DeductionUseCase) Deduct(ctx context.Context, tx *entity.Transaction, actor string) (*DeductionResult, error) {
	if tx == nil || tx.TransactionNumber == "" {
		return nil, fmt.Errorf("%w: transacción sin número", domain.ErrInvalidInput)
	}
	start := time.Now()
	reference := tx.TransactionNumber

	if uc.claimer != nil {
		won, err := uc.claimer.Claim(ctx, "deduct:"+reference)
		if err != nil {
			// El claim es refuerzo, no requisito: si Redis no responde se
			// sigue con el guard base.
			uc.log.Warn().Err(err).Str("reference", reference).Msg("claim de referencia falló; se continúa con guard de lectura")
		} else if !won {
			return uc.shortCircuitDeduction(ctx, reference, start,
				fmt.Sprintf("la referencia %s ya está reclamada por otra llamada", reference))
		}
	}

	existing, err := uc.guard.ExistingDeduction(reference)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		uc.log.Warn().Str("reference", reference).Int("movements", len(existing)).
			Msg("transacción ya procesada; se devuelven los movimientos existentes")
		result := &DeductionResult{
			Success:   true,
			Movements: existing,
			Warnings:  []string{fmt.Sprintf("la transacción %s ya fue procesada; no se descontó de nuevo", reference)},
		}
		uc.events.DeductionCompleted(ctx, reference, len(existing), 0, 1, time.Since(start))
		return result, nil
	}

	result := &DeductionResult{Success: true}
	for idx, item := range tx.Items {
		var out ItemOutcome
		err := uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
			blendRepo repository.BlendTemplateRepository,
			bundleRepo repository.BundleRepository,
		) error {
			sc := Scope{Movements: movRepo, Products: productRepo, Blends: blendRepo, Bundles: bundleRepo}
			var routeErr error
			out, routeErr = uc.router.Route(ctx, sc, tx, item, actor)
			return routeErr
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("reference", reference).Int("item", idx).
				Str("product_id", item.ProductID).Msg("ítem falló; el lote continúa")
			result.Errors = append(result.Errors,
				fmt.Sprintf("ítem %d (%s, tipo %s): %v", idx, item.ProductID, item.ItemType, err))
			continue
		}
		result.Movements = append(result.Movements, out.Movements...)
		result.Warnings = append(result.Warnings, out.Warnings...)
		for _, m := range out.Movements {
			uc.events.MovementRecorded(ctx, m)
		}
	}

	uc.events.DeductionCompleted(ctx, reference, len(result.Movements), len(result.Errors), len(result.Warnings), time.Since(start))
	return result, nil
}

// DeductInTx procesa el lote completo contra repositorios que el caller ya
// tiene atados a su propia transacción, para que toda la venta (ítems más la
// escritura de la transacción externa) quede en un solo commit. El guard se
// evalúa sobre esa misma sesión.
func (uc *DeductionUseCase) DeductInTx(ctx context.Context, sc Scope, tx *entity.Transaction, actor string) (*DeductionResult, error) {
	if tx == nil || tx.TransactionNumber == "" {
		return nil, fmt.Errorf("%w: transacción sin número", domain.ErrInvalidInput)
	}
	start := time.Now()
	reference := tx.TransactionNumber

	existing, err := NewIdempotencyGuard(sc.Movements).ExistingDeduction(reference)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &DeductionResult{
			Success:   true,
			Movements: existing,
			Warnings:  []string{fmt.Sprintf("la transacción %s ya fue procesada; no se descontó de nuevo", reference)},
		}, nil
	}

	result := &DeductionResult{Success: true}
	for idx, item := range tx.Items {
		out, err := uc.router.Route(ctx, sc, tx, item, actor)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("ítem %d (%s, tipo %s): %v", idx, item.ProductID, item.ItemType, err))
			continue
		}
		result.Movements = append(result.Movements, out.Movements...)
		result.Warnings = append(result.Warnings, out.Warnings...)
		for _, m := range out.Movements {
			uc.events.MovementRecorded(ctx, m)
		}
	}

	uc.events.DeductionCompleted(ctx, reference, len(result.Movements), len(result.Errors), len(result.Warnings), time.Since(start))
	return result, nil
}

// shortCircuitDeduction arma el resultado cuando otra llamada ganó el claim.
func (uc *DeductionUseCase) shortCircuitDeduction(ctx context.Context, reference string, start time.Time, warning string) (*DeductionResult, error) {
	existing, err := uc.guard.ExistingDeduction(reference)
	if err != nil {
		return nil, err
	}
	uc.log.Warn().Str("reference", reference).Msg("referencia reclamada por otra llamada; no se procesa")
	result := &DeductionResult{
		Success:   true,
		Movements: existing,
		Warnings:  []string{warning},
	}
	uc.events.DeductionCompleted(ctx, reference, len(existing), 0, 1, time.Since(start))
	return result, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Handlers de ítem
// ──────────────────────────────────────────────────────────────────────────────

// handleProduct deduce un producto simple. Ventas por cantidad ajustan los
// contadores directamente (incluso a negativo); ventas volumétricas de
// productos con contenedores pasan además por el asignador FIFO/dirigido.
func (uc *DeductionUseCase) handleProduct(ctx context.Context, sc Scope, tx *entity.Transaction, item entity.TransactionItem, actor string) (ItemOutcome, error) {
	product, err := sc.Products.GetForUpdate(item.ProductID)
	if err != nil {
		return ItemOutcome{}, fmt.Errorf("leer producto %s: %w", item.ProductID, err)
	}
	if product == nil {
		return ItemOutcome{}, fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
	}

	now := time.Now().UTC()
	m := newMovement(product, entity.MovementTypeSale, item.Quantity, item.ConvertedQuantity,
		item.UnitID, item.BaseUnit, tx.TransactionNumber, "venta directa", actor, now)

	var out ItemOutcome
	if item.SaleType != entity.SaleTypeVolume && product.TracksContainers() {
		// Venta por unidades de un producto con contenedores: se venden
		// sellados completos. El estado "full" en el movimiento lo distingue
		// para que la reversa sepa restaurar el contador de sellados.
		domaininv.SellFull(product, int(item.Quantity.IntPart()))
		m.ContainerStatus = entity.ContainerStatusFull
	}
	if item.SaleType == entity.SaleTypeVolume && product.TracksContainers() {
		alloc, err := domaininv.Allocate(product, domaininv.AllocationInput{
			Quantity:    m.ConvertedQuantity,
			ContainerID: item.ContainerID,
			Reference:   tx.TransactionNumber,
			UserID:      actor,
			Now:         now,
		})
		if err != nil {
			return ItemOutcome{}, err
		}
		remaining := alloc.Remaining
		m.ContainerID = alloc.ContainerID
		m.ContainerStatus = alloc.Status
		m.RemainingQuantity = &remaining
		if alloc.Oversold {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("producto %s sin contenedores disponibles; venta registrada como sobreventa", product.Name))
		}
	}

	if err := persistMovement(sc, product, m); err != nil {
		return out, err
	}
	out.Movements = append(out.Movements, m)
	return out, nil
}

// handleFixedBlend expande la receta un nivel.
func (uc *DeductionUseCase) handleFixedBlend(ctx context.Context, sc Scope, tx *entity.Transaction, item entity.TransactionItem, actor string) (ItemOutcome, error) {
	return uc.resolver.ResolveBlend(ctx, sc, item.ProductID, item.Quantity,
		tx.TransactionNumber, actor, entity.MovementTypeFixedBlend)
}

// handleBundle expande el combo; las líneas de mezcla recursan un nivel.
func (uc *DeductionUseCase) handleBundle(ctx context.Context, sc Scope, tx *entity.Transaction, item entity.TransactionItem, actor string) (ItemOutcome, error) {
	return uc.resolver.ResolveBundle(ctx, sc, item.ProductID, item.Quantity,
		tx.TransactionNumber, actor)
}

// handleNoOp tipos sin impacto de inventario: no produce movimientos.
func (uc *DeductionUseCase) handleNoOp(ctx context.Context, sc Scope, tx *entity.Transaction, item entity.TransactionItem, actor string) (ItemOutcome, error) {
	return ItemOutcome{}, nil
}
