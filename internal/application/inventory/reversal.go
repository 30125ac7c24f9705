package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Esencia-api/internal/domain"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Esencia-api/internal/domain/inventory"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
	"github.com/jhoicas/Esencia-api/pkg/logger"
)

// ReversalUseCase emite las devoluciones compensatorias de una transacción
// cancelada: por cada movimiento original que afecta stock crea un movimiento
// "return" con los mismos campos y referencia CANCEL-<número>, y suma de
// vuelta al producto (y a su contenedor, si la venta lo anotó).
//
// La estadística de uso de recetas NO se revierte: usage_count es una métrica
// de popularidad de por vida, no un saldo.
type ReversalUseCase struct {
	txRunner TxRunner
	guard    *IdempotencyGuard
	claimer  ReferenceClaimer
	events   EventRecorder
	log      *logger.Logger
}

// NewReversalUseCase construye el orquestador de reversas.
func NewReversalUseCase(
	txRunner TxRunner,
	guard *IdempotencyGuard,
	claimer ReferenceClaimer,
	events EventRecorder,
	log *logger.Logger,
) *ReversalUseCase {
	if events == nil {
		events = NopRecorder{}
	}
	return &ReversalUseCase{
		txRunner: txRunner,
		guard:    guard,
		claimer:  claimer,
		events:   events,
		log:      log,
	}
}

// Reverse revierte la deducción de una transacción. Idempotente: una segunda
// llamada encuentra las devoluciones bajo CANCEL-<número> y no toca stock.
// Las fallas por movimiento se acumulan en Errors sin abortar el resto.
func (uc *ReversalUseCase) Reverse(ctx context.Context, transactionNumber, actor string) (*ReversalResult, error) {
	if transactionNumber == "" {
		return nil, fmt.Errorf("%w: número de transacción vacío", domain.ErrInvalidInput)
	}
	start := time.Now()
	cancelRef := entity.ReversalReference(transactionNumber)

	if uc.claimer != nil {
		won, err := uc.claimer.Claim(ctx, "reverse:"+transactionNumber)
		if err != nil {
			uc.log.Warn().Err(err).Str("reference", cancelRef).Msg("claim de reversa falló; se continúa con guard de lectura")
		} else if !won {
			existing, err := uc.guard.ExistingReversal(transactionNumber)
			if err != nil {
				return nil, err
			}
			result := &ReversalResult{
				Success:           true,
				ReversedMovements: existing,
				ReversedCount:     len(existing),
				Warnings:          []string{fmt.Sprintf("la reversa de %s ya está reclamada por otra llamada", transactionNumber)},
			}
			uc.events.ReversalCompleted(ctx, cancelRef, 0, len(existing), 0, time.Since(start))
			return result, nil
		}
	}

	already, err := uc.guard.ExistingReversal(transactionNumber)
	if err != nil {
		return nil, err
	}
	if len(already) > 0 {
		uc.log.Warn().Str("reference", cancelRef).Int("returns", len(already)).
			Msg("transacción ya revertida; no se revierte de nuevo")
		result := &ReversalResult{
			Success:           true,
			ReversedMovements: already,
			ReversedCount:     len(already),
			Warnings:          []string{fmt.Sprintf("la transacción %s ya fue revertida", transactionNumber)},
		}
		uc.events.ReversalCompleted(ctx, cancelRef, 0, len(already), 0, time.Since(start))
		return result, nil
	}

	originals, err := uc.guard.ExistingDeduction(transactionNumber)
	if err != nil {
		return nil, err
	}
	if len(originals) == 0 {
		uc.log.Warn().Str("transaction", transactionNumber).Msg("sin movimientos originales; nada que revertir")
		result := &ReversalResult{
			Success:  true,
			Warnings: []string{fmt.Sprintf("la transacción %s no tiene movimientos que revertir", transactionNumber)},
		}
		uc.events.ReversalCompleted(ctx, cancelRef, 0, 0, 0, time.Since(start))
		return result, nil
	}

	result := &ReversalResult{Success: true, OriginalMovementCount: len(originals)}
	for _, orig := range originals {
		var reversed *entity.Movement
		var warnings []string
		err := uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
			blendRepo repository.BlendTemplateRepository,
			bundleRepo repository.BundleRepository,
		) error {
			sc := Scope{Movements: movRepo, Products: productRepo, Blends: blendRepo, Bundles: bundleRepo}
			var revErr error
			reversed, warnings, revErr = uc.reverseMovement(sc, orig, cancelRef, transactionNumber, actor)
			return revErr
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("movement_id", orig.ID).Str("reference", cancelRef).
				Msg("reversa de movimiento falló; se continúa")
			result.Errors = append(result.Errors,
				fmt.Sprintf("movimiento %s (%s): %v", orig.ID, orig.ProductID, err))
			continue
		}
		result.ReversedMovements = append(result.ReversedMovements, reversed)
		result.ReversedCount++
		result.Warnings = append(result.Warnings, warnings...)
		uc.events.MovementRecorded(ctx, reversed)
	}

	uc.events.ReversalCompleted(ctx, cancelRef, result.OriginalMovementCount, result.ReversedCount, len(result.Errors), time.Since(start))
	return result, nil
}

// reverseMovement emite la devolución de UN movimiento original dentro de la
// transacción de BD activa.
func (uc *ReversalUseCase) reverseMovement(sc Scope, orig *entity.Movement, cancelRef, transactionNumber, actor string) (*entity.Movement, []string, error) {
	product, err := sc.Products.GetForUpdate(orig.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("leer producto %s: %w", orig.ProductID, err)
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, orig.ProductID)
	}

	ret := &entity.Movement{
		ID:                uuid.New().String(),
		ProductID:         orig.ProductID,
		ProductName:       orig.ProductName,
		Type:              entity.MovementTypeReturn,
		Quantity:          orig.Quantity,
		ConvertedQuantity: orig.ConvertedQuantity,
		UnitID:            orig.UnitID,
		BaseUnit:          orig.BaseUnit,
		Reference:         cancelRef,
		Notes:             fmt.Sprintf("reversa de %s (transacción %s)", orig.Type, transactionNumber),
		CreatedBy:         actor,
		CreatedAt:         time.Now().UTC(),
	}

	var warnings []string
	if orig.ContainerID == "" && orig.ContainerStatus == entity.ContainerStatusFull {
		// Venta de sellados completos: se restaura el contador de sellados.
		domaininv.RestoreFull(product, int(orig.Quantity.IntPart()))
		ret.ContainerStatus = entity.ContainerStatusFull
	}
	if orig.ContainerID != "" {
		alloc, found := domaininv.Restore(product, orig.ContainerID, orig.ConvertedQuantity)
		if found {
			remaining := alloc.Remaining
			ret.ContainerID = alloc.ContainerID
			ret.ContainerStatus = alloc.Status
			ret.RemainingQuantity = &remaining
		} else {
			warnings = append(warnings,
				fmt.Sprintf("contenedor %s de %s ya no existe; solo se ajustaron los contadores", orig.ContainerID, orig.ProductName))
		}
	}

	if err := persistMovement(sc, product, ret); err != nil {
		return nil, warnings, err
	}
	return ret, warnings, nil
}
