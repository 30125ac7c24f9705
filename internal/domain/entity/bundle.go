package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de línea dentro de un combo.
const (
	BundleLineProduct    = "product"
	BundleLineFixedBlend = "fixed_blend"
)

// BundleLine una línea de la composición de un combo: referencia directa a un
// producto o a una mezcla fija. Quantity es por UNA unidad de combo (para
// mezclas, número de unidades de mezcla por combo).
type BundleLine struct {
	ProductType     string          `json:"product_type"`
	ProductID       string          `json:"product_id,omitempty"`
	BlendTemplateID string          `json:"blend_template_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// Bundle es un combo/kit vendible compuesto por productos y/o mezclas fijas.
type Bundle struct {
	ID        string
	Name      string
	Lines     []BundleLine
	CreatedAt time.Time
	UpdatedAt time.Time
}
