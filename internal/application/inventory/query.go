package inventory

import (
	"fmt"

	"github.com/jhoicas/Esencia-api/internal/domain"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro de movimientos y del stock. Trabaja sobre
// repositorios atados al pool: las consultas no necesitan transacción.
type QueryUseCase struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
}

func NewQueryUseCase(movements repository.MovementRepository, products repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{movements: movements, products: products}
}

// MovementsByReference lista los movimientos de una referencia, opcionalmente
// filtrados por tipo.
func (uc *QueryUseCase) MovementsByReference(reference, movementType string) ([]*entity.Movement, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: reference requerida", domain.ErrInvalidInput)
	}
	if movementType != "" {
		return uc.movements.ListByReferenceAndTypes(reference, []string{movementType})
	}
	return uc.movements.ListByReference(reference)
}

// MovementsByProduct lista los movimientos de un producto, paginados.
func (uc *QueryUseCase) MovementsByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movements.ListByProduct(productID, limit, offset)
}

// ProductStock devuelve el snapshot de stock de un producto.
func (uc *QueryUseCase) ProductStock(productID string) (*entity.Product, error) {
	p, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return p, nil
}
