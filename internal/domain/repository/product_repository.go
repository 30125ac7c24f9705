package repository

import "github.com/jhoicas/Esencia-api/internal/domain/entity"

// ProductRepository define el puerto para leer/escribir el snapshot de stock
// de un producto, incluido el estado de contenedores. GetByID y GetForUpdate
// devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); usar
	// dentro de transacciones.
	GetForUpdate(id string) (*entity.Product, error)
	// SaveStock persiste los contadores agregados y la lista de contenedores
	// parciales PRESERVANDO su orden. Ninguna otra vía de escritura debe
	// tocar estos campos.
	SaveStock(p *entity.Product) error
}
