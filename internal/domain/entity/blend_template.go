package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BlendIngredient un ingrediente de una receta, con la cantidad necesaria
// para producir UNA unidad de mezcla.
type BlendIngredient struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitID    string          `json:"unit_id"`
	UnitName  string          `json:"unit_name"`
}

// BlendTemplate es la receta fija de una mezcla (ej. un perfume de la casa).
// UsageCount y LastUsed se actualizan en cada venta; una reversa NO los revierte:
// el contador es una métrica de popularidad de por vida, no un saldo.
type BlendTemplate struct {
	ID          string
	Name        string
	Ingredients []BlendIngredient
	UsageCount  decimal.Decimal
	LastUsed    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
