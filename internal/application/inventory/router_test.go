package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Esencia-api/internal/application/inventory"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/infrastructure/memory"
)

// Un handler registrado recibe su tipo, sin advertencias.
func TestItemRouter_DespachaAlHandlerRegistrado(t *testing.T) {
	var seen string
	router := inventory.NewItemRouter(func(_ context.Context, _ inventory.Scope, _ *entity.Transaction, item entity.TransactionItem, _ string) (inventory.ItemOutcome, error) {
		seen = "fallback:" + item.ItemType
		return inventory.ItemOutcome{}, nil
	}, testLog())
	router.Register("gift_card", func(_ context.Context, _ inventory.Scope, _ *entity.Transaction, item entity.TransactionItem, _ string) (inventory.ItemOutcome, error) {
		seen = "gift_card"
		return inventory.ItemOutcome{}, nil
	})

	out, err := router.Route(context.Background(), memory.NewStore().Scope(),
		saleTx("TXN-300"), entity.TransactionItem{ItemType: "gift_card"}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "gift_card", seen)
	assert.Empty(t, out.Warnings)
}

// Un tipo sin handler cae al fallback y se anota la advertencia.
func TestItemRouter_TipoSinHandler_CaeAlFallbackConAdvertencia(t *testing.T) {
	var seen string
	router := inventory.NewItemRouter(func(_ context.Context, _ inventory.Scope, _ *entity.Transaction, item entity.TransactionItem, _ string) (inventory.ItemOutcome, error) {
		seen = "fallback:" + item.ItemType
		return inventory.ItemOutcome{}, nil
	}, testLog())

	out, err := router.Route(context.Background(), memory.NewStore().Scope(),
		saleTx("TXN-301"), entity.TransactionItem{ItemType: "promo"}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "fallback:promo", seen)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "promo")
}

// El caso de uso expone el router para registrar tipos nuevos sin tocar el
// despachador.
func TestDeduction_RouterExtensible(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	deduction.Router().Register("gift_card", func(_ context.Context, _ inventory.Scope, _ *entity.Transaction, _ entity.TransactionItem, _ string) (inventory.ItemOutcome, error) {
		return inventory.ItemOutcome{}, nil
	})

	item := entity.TransactionItem{ProductID: "p1", ItemType: "gift_card", Quantity: dec(1)}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-302", item), "user-1")
	require.NoError(t, err)

	assert.Empty(t, result.Warnings, "el tipo registrado ya no cae al fallback")
	assert.Empty(t, result.Movements)
	assert.True(t, dec(100).Equal(currentStock(t, store, "p1")))
}
