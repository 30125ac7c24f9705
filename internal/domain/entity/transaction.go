package entity

import "github.com/shopspring/decimal"

// Tipos de ítem de una transacción de venta (propiedad del colaborador de
// transacciones; aquí solo se consumen).
const (
	ItemTypeProduct      = "product"
	ItemTypeFixedBlend   = "fixed_blend"
	ItemTypeCustomBlend  = "custom_blend"
	ItemTypeBundle       = "bundle"
	ItemTypeMisc         = "miscellaneous"
	ItemTypeConsultation = "consultation"
	ItemTypeService      = "service"
)

// Modalidades de venta.
const (
	SaleTypeQuantity = "quantity" // por unidades; ajusta stock directo, sin contenedores
	SaleTypeVolume   = "volume"   // volumétrica; asigna desde contenedores parciales
)

// TransactionItem una línea de venta tal como la entrega el colaborador de
// transacciones. ProductID apunta a un producto, receta o combo según ItemType.
type TransactionItem struct {
	ProductID         string
	ItemType          string
	SaleType          string
	Quantity          decimal.Decimal
	ConvertedQuantity decimal.Decimal // cantidad en la unidad base del producto
	UnitID            string
	BaseUnit          string
	ContainerID       string // opcional: contenedor explícito para ventas volumétricas
}

// Transaction la venta completada (o por cancelar) que dispara el motor.
// TransactionNumber es único y se usa como referencia de deducción.
type Transaction struct {
	TransactionNumber string
	Items             []TransactionItem
}
