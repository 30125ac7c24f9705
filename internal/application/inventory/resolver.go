package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/pkg/logger"
)

// CompositionResolver expande una receta (mezcla fija) o un combo en sus
// movimientos primitivos escalados, recursando un nivel para mezclas anidadas
// en combos.
type CompositionResolver struct {
	log *logger.Logger
}

// NewCompositionResolver construye el resolver.
func NewCompositionResolver(log *logger.Logger) *CompositionResolver {
	return &CompositionResolver{log: log}
}

// ResolveBlend descuenta cada ingrediente de la receta escalado por el
// multiplicador y actualiza la estadística de uso de la plantilla
// (usage_count += multiplicador, last_used = ahora). movementType distingue
// la venta directa de mezcla (fixed_blend) del ingrediente de mezcla anidada
// en combo (bundle_blend_ingredient).
//
// Una receta inexistente es error del caller; un ingrediente cuyo producto ya
// no existe se salta con advertencia para no bloquear a sus hermanos.
func (r *CompositionResolver) ResolveBlend(ctx context.Context, sc Scope, blendTemplateID string, multiplier decimal.Decimal, reference, actor, movementType string) (ItemOutcome, error) {
	tpl, err := sc.Blends.GetByID(blendTemplateID)
	if err != nil {
		return ItemOutcome{}, fmt.Errorf("leer receta %s: %w", blendTemplateID, err)
	}
	if tpl == nil {
		return ItemOutcome{}, fmt.Errorf("%w: receta %s", domain.ErrNotFound, blendTemplateID)
	}

	now := time.Now().UTC()
	var out ItemOutcome
	for _, ing := range tpl.Ingredients {
		product, err := sc.Products.GetForUpdate(ing.ProductID)
		if err != nil {
			return out, fmt.Errorf("leer ingrediente %s: %w", ing.ProductID, err)
		}
		if product == nil {
			r.log.Warn().
				Str("blend_template_id", blendTemplateID).
				Str("product_id", ing.ProductID).
				Msg("ingrediente sin producto; se salta")
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("ingrediente %s de la receta %s no existe; se saltó", ing.ProductID, tpl.Name))
			continue
		}

		scaled := ing.Quantity.Mul(multiplier)
		notes := fmt.Sprintf("ingrediente de %s x%s", tpl.Name, multiplier.String())
		m := newMovement(product, movementType, scaled, scaled, ing.UnitID, product.BaseUnit, reference, notes, actor, now)
		if err := persistMovement(sc, product, m); err != nil {
			return out, err
		}
		out.Movements = append(out.Movements, m)
	}

	if err := sc.Blends.RecordUsage(tpl.ID, multiplier, now); err != nil {
		return out, fmt.Errorf("actualizar uso de receta %s: %w", tpl.ID, err)
	}
	return out, nil
}

// ResolveBundle descuenta cada línea del combo escalada por el multiplicador
// del combo; las líneas que son mezclas recursan en ResolveBlend con el
// multiplicador ya escalado. Las líneas con producto/receta faltante se saltan
// con advertencia (política más blanda que la del router de ítems, a
// propósito: una línea mala no bloquea a sus hermanas).
func (r *CompositionResolver) ResolveBundle(ctx context.Context, sc Scope, bundleID string, multiplier decimal.Decimal, reference, actor string) (ItemOutcome, error) {
	bundle, err := sc.Bundles.GetByID(bundleID)
	if err != nil {
		return ItemOutcome{}, fmt.Errorf("leer combo %s: %w", bundleID, err)
	}
	if bundle == nil {
		return ItemOutcome{}, fmt.Errorf("%w: combo %s", domain.ErrNotFound, bundleID)
	}

	now := time.Now().UTC()
	var out ItemOutcome
	for _, line := range bundle.Lines {
		scaled := line.Quantity.Mul(multiplier)

		switch line.ProductType {
		case entity.BundleLineFixedBlend:
			nested, err := r.ResolveBlend(ctx, sc, line.BlendTemplateID, scaled, reference, actor, entity.MovementTypeBundleBlendIngredient)
			out.Warnings = append(out.Warnings, nested.Warnings...)
			out.Movements = append(out.Movements, nested.Movements...)
			if err != nil {
				// Receta faltante: advertencia, no error duro. Cualquier otra
				// falla (persistencia) sí aborta el ítem.
				if errors.Is(err, domain.ErrNotFound) && len(nested.Movements) == 0 {
					r.log.Warn().
						Str("bundle_id", bundleID).
						Str("blend_template_id", line.BlendTemplateID).
						Msg("línea de mezcla del combo sin receta; se salta")
					out.Warnings = append(out.Warnings,
						fmt.Sprintf("receta %s del combo %s no existe; se saltó", line.BlendTemplateID, bundle.Name))
					continue
				}
				return out, err
			}

		case entity.BundleLineProduct, "":
			product, err := sc.Products.GetForUpdate(line.ProductID)
			if err != nil {
				return out, fmt.Errorf("leer producto %s del combo: %w", line.ProductID, err)
			}
			if product == nil {
				r.log.Warn().
					Str("bundle_id", bundleID).
					Str("product_id", line.ProductID).
					Msg("línea de combo sin producto; se salta")
				out.Warnings = append(out.Warnings,
					fmt.Sprintf("producto %s del combo %s no existe; se saltó", line.ProductID, bundle.Name))
				continue
			}
			notes := fmt.Sprintf("componente de combo %s x%s", bundle.Name, multiplier.String())
			m := newMovement(product, entity.MovementTypeBundleSale, scaled, scaled, product.UnitID, product.BaseUnit, reference, notes, actor, now)
			if err := persistMovement(sc, product, m); err != nil {
				return out, err
			}
			out.Movements = append(out.Movements, m)

		default:
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("línea de combo con tipo %q desconocido; se saltó", line.ProductType))
		}
	}
	return out, nil
}
