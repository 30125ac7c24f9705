package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Esencia-api/internal/domain/entity"
)

// BlendTemplateRepository puerto de recetas fijas. GetByID devuelve (nil, nil)
// si la receta no existe.
type BlendTemplateRepository interface {
	GetByID(id string) (*entity.BlendTemplate, error)
	// RecordUsage incrementa usage_count en delta y estampa last_used.
	// Solo se invoca en deducciones; las reversas no revierten estadística.
	RecordUsage(id string, delta decimal.Decimal, usedAt time.Time) error
}
