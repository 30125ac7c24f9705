package repository

import "github.com/jhoicas/Esencia-api/internal/domain/entity"

// BundleRepository puerto de lectura de combos. GetByID devuelve (nil, nil)
// si el combo no existe.
type BundleRepository interface {
	GetByID(id string) (*entity.Bundle, error)
}
