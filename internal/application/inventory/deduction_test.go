package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Esencia-api/internal/application/inventory"
	"github.com/jhoicas/Esencia-api/internal/domain"
	"github.com/jhoicas/Esencia-api/internal/domain/entity"
	"github.com/jhoicas/Esencia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Esencia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func testLog() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// newEngine arma el motor completo sobre el store en memoria.
func newEngine(store *memory.Store) (*inventory.DeductionUseCase, *inventory.ReversalUseCase) {
	log := testLog()
	guard := inventory.NewIdempotencyGuard(store.Movements())
	resolver := inventory.NewCompositionResolver(log)
	deduction := inventory.NewDeductionUseCase(store, guard, resolver, nil, nil, log)
	reversal := inventory.NewReversalUseCase(store, guard, nil, nil, log)
	return deduction, reversal
}

func seedProduct(store *memory.Store, id, name string, stock int64) {
	store.Products().Seed(&entity.Product{
		ID:             id,
		Name:           name,
		UnitID:         "unit-ml",
		BaseUnit:       "ml",
		CurrentStock:   dec(stock),
		AvailableStock: dec(stock),
	})
}

func saleTx(number string, items ...entity.TransactionItem) *entity.Transaction {
	return &entity.Transaction{TransactionNumber: number, Items: items}
}

func productItem(productID string, qty int64) entity.TransactionItem {
	return entity.TransactionItem{
		ProductID: productID,
		ItemType:  entity.ItemTypeProduct,
		SaleType:  entity.SaleTypeQuantity,
		Quantity:  dec(qty),
	}
}

func currentStock(t *testing.T, store *memory.Store, productID string) decimal.Decimal {
	t.Helper()
	p, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

// ──────────────────────────────────────────────────────────────────────────────
// Deducción directa
// ──────────────────────────────────────────────────────────────────────────────

func TestDeduct_ProductoDirecto_DescuentaStock(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	result, err := deduction.Deduct(context.Background(), saleTx("TXN-001", productItem("p1", 5)), "user-1")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Movements, 1)
	m := result.Movements[0]
	assert.Equal(t, entity.MovementTypeSale, m.Type)
	assert.Equal(t, "TXN-001", m.Reference)
	assert.Equal(t, "user-1", m.CreatedBy)
	assert.True(t, dec(5).Equal(m.Quantity))
	assert.True(t, dec(5).Equal(m.ConvertedQuantity), "sin conversión cae a la cantidad de venta")

	assert.True(t, dec(95).Equal(currentStock(t, store, "p1")), "100 - 5 = 95")
}

// El stock puede quedar negativo: la venta nunca se bloquea por falta de stock.
func TestDeduct_StockInsuficiente_QuedaNegativo(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 2)
	deduction, _ := newEngine(store)

	result, err := deduction.Deduct(context.Background(), saleTx("TXN-002", productItem("p1", 10)), "user-1")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.True(t, dec(-8).Equal(currentStock(t, store, "p1")), "2 - 10 = -8")
}

// Cantidad convertida presente: los contadores se mueven en unidad base.
func TestDeduct_UsaCantidadConvertida(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 1000)
	deduction, _ := newEngine(store)

	item := productItem("p1", 1)
	item.ConvertedQuantity = dec(30) // 1 frasco = 30 ml
	_, err := deduction.Deduct(context.Background(), saleTx("TXN-003", item), "user-1")
	require.NoError(t, err)

	assert.True(t, dec(970).Equal(currentStock(t, store, "p1")))
}

func TestDeduct_TransaccionSinNumero_Error(t *testing.T) {
	store := memory.NewStore()
	deduction, _ := newEngine(store)

	_, err := deduction.Deduct(context.Background(), saleTx("", productItem("p1", 1)), "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas volumétricas con contenedores
// ──────────────────────────────────────────────────────────────────────────────

func TestDeduct_VentaVolumetrica_AnotaContenedor(t *testing.T) {
	store := memory.NewStore()
	store.Products().Seed(&entity.Product{
		ID:                "p1",
		Name:              "Esencia de Lavanda",
		UnitID:            "unit-ml",
		BaseUnit:          "ml",
		CurrentStock:      dec(130),
		AvailableStock:    dec(130),
		ContainerCapacity: dec(100),
		PartialContainers: []entity.Container{
			{ID: "cont-A", Remaining: dec(30), Status: entity.ContainerStatusPartial},
		},
	})
	deduction, _ := newEngine(store)

	item := productItem("p1", 10)
	item.SaleType = entity.SaleTypeVolume
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-010", item), "user-1")
	require.NoError(t, err)

	require.Len(t, result.Movements, 1)
	m := result.Movements[0]
	assert.Equal(t, "cont-A", m.ContainerID)
	assert.Equal(t, entity.ContainerStatusPartial, m.ContainerStatus)
	require.NotNil(t, m.RemainingQuantity)
	assert.True(t, dec(20).Equal(*m.RemainingQuantity))

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, dec(20).Equal(p.PartialContainers[0].Remaining), "el contenedor persistido también bajó")
	assert.True(t, dec(120).Equal(p.CurrentStock))
}

// Venta por unidades de un producto con contenedores: se venden sellados
// completos y el movimiento queda marcado con estado "full".
func TestDeduct_VentaPorUnidades_DescuentaSellados(t *testing.T) {
	store := memory.NewStore()
	store.Products().Seed(&entity.Product{
		ID:                "p1",
		Name:              "Esencia de Lavanda",
		BaseUnit:          "ml",
		CurrentStock:      dec(300),
		AvailableStock:    dec(300),
		ContainerCapacity: dec(100),
		ContainersFull:    3,
	})
	deduction, _ := newEngine(store)

	item := productItem("p1", 2)
	item.ConvertedQuantity = dec(200) // 2 frascos de 100 ml
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-012", item), "user-1")
	require.NoError(t, err)

	require.Len(t, result.Movements, 1)
	assert.Equal(t, entity.ContainerStatusFull, result.Movements[0].ContainerStatus)
	assert.Empty(t, result.Movements[0].ContainerID)

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ContainersFull, "3 sellados - 2 vendidos")
	assert.True(t, dec(100).Equal(p.CurrentStock))
}

// Venta volumétrica sin contenedores disponibles: sobreventa con advertencia,
// nunca bloqueo.
func TestDeduct_VentaVolumetricaSinContenedores_Sobreventa(t *testing.T) {
	store := memory.NewStore()
	store.Products().Seed(&entity.Product{
		ID:                "p1",
		Name:              "Esencia de Lavanda",
		BaseUnit:          "ml",
		ContainerCapacity: dec(100),
	})
	deduction, _ := newEngine(store)

	item := productItem("p1", 25)
	item.SaleType = entity.SaleTypeVolume
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-011", item), "user-1")
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.Movements, 1)
	assert.Equal(t, entity.ContainerStatusOversold, result.Movements[0].ContainerStatus)
	assert.NotEmpty(t, result.Warnings, "la sobreventa se reporta como advertencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mezclas fijas
// ──────────────────────────────────────────────────────────────────────────────

func TestDeduct_MezclaFija_EscalaIngredientesYActualizaUso(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "ing-a", "Aceite A", 100)
	seedProduct(store, "ing-b", "Aceite B", 100)
	store.Blends().Seed(&entity.BlendTemplate{
		ID:   "blend-1",
		Name: "Mezcla Primavera",
		Ingredients: []entity.BlendIngredient{
			{ProductID: "ing-a", Quantity: dec(5), UnitID: "unit-ml"},
			{ProductID: "ing-b", Quantity: dec(3), UnitID: "unit-ml"},
		},
	})
	deduction, _ := newEngine(store)

	item := entity.TransactionItem{ProductID: "blend-1", ItemType: entity.ItemTypeFixedBlend, Quantity: dec(2)}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-020", item), "user-1")
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Movements, 2)
	for _, m := range result.Movements {
		assert.Equal(t, entity.MovementTypeFixedBlend, m.Type)
		assert.Equal(t, "TXN-020", m.Reference)
	}
	assert.True(t, dec(90).Equal(currentStock(t, store, "ing-a")), "100 - 5*2")
	assert.True(t, dec(94).Equal(currentStock(t, store, "ing-b")), "100 - 3*2")

	tpl, err := store.Blends().GetByID("blend-1")
	require.NoError(t, err)
	assert.True(t, dec(2).Equal(tpl.UsageCount), "usage_count += multiplicador")
	assert.NotNil(t, tpl.LastUsed)
}

// Un ingrediente cuyo producto ya no existe se salta con advertencia; los
// hermanos se descuentan normal.
func TestDeduct_MezclaConIngredienteHuerfano_SaltaConAdvertencia(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "ing-a", "Aceite A", 100)
	store.Blends().Seed(&entity.BlendTemplate{
		ID:   "blend-1",
		Name: "Mezcla Primavera",
		Ingredients: []entity.BlendIngredient{
			{ProductID: "ing-a", Quantity: dec(5)},
			{ProductID: "ing-borrado", Quantity: dec(3)},
		},
	})
	deduction, _ := newEngine(store)

	item := entity.TransactionItem{ProductID: "blend-1", ItemType: entity.ItemTypeFixedBlend, Quantity: dec(1)}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-021", item), "user-1")
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Movements, 1)
	assert.NotEmpty(t, result.Warnings)
	assert.True(t, dec(95).Equal(currentStock(t, store, "ing-a")))
}

// Receta inexistente sí es error del ítem.
func TestDeduct_MezclaInexistente_ErrorDeItem(t *testing.T) {
	store := memory.NewStore()
	deduction, _ := newEngine(store)

	item := entity.TransactionItem{ProductID: "no-existe", ItemType: entity.ItemTypeFixedBlend, Quantity: dec(1)}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-022", item), "user-1")
	require.NoError(t, err)

	assert.Len(t, result.Errors, 1)
	assert.Empty(t, result.Movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Combos
// ──────────────────────────────────────────────────────────────────────────────

// Multiplicadores anidados: 2 combos x 2 mezclas por combo x 10 ml por
// ingrediente = 40 ml del ingrediente.
func TestDeduct_ComboConMezclaAnidada_MultiplicaEnCascada(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "ing-a", "Aceite A", 100)
	seedProduct(store, "jabon", "Jabón Artesanal", 50)
	store.Blends().Seed(&entity.BlendTemplate{
		ID:   "blend-1",
		Name: "Mezcla Relax",
		Ingredients: []entity.BlendIngredient{
			{ProductID: "ing-a", Quantity: dec(10)},
		},
	})
	store.Bundles().Seed(&entity.Bundle{
		ID:   "bundle-1",
		Name: "Kit Spa",
		Lines: []entity.BundleLine{
			{ProductType: entity.BundleLineFixedBlend, BlendTemplateID: "blend-1", Quantity: dec(2)},
			{ProductType: entity.BundleLineProduct, ProductID: "jabon", Quantity: dec(1)},
		},
	})
	deduction, _ := newEngine(store)

	item := entity.TransactionItem{ProductID: "bundle-1", ItemType: entity.ItemTypeBundle, Quantity: dec(2)}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-030", item), "user-1")
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Movements, 2)

	byType := map[string]*entity.Movement{}
	for _, m := range result.Movements {
		byType[m.Type] = m
	}
	require.Contains(t, byType, entity.MovementTypeBundleBlendIngredient)
	require.Contains(t, byType, entity.MovementTypeBundleSale)
	assert.True(t, dec(40).Equal(byType[entity.MovementTypeBundleBlendIngredient].ConvertedQuantity), "2 combos x 2 mezclas x 10 ml")
	assert.True(t, dec(2).Equal(byType[entity.MovementTypeBundleSale].ConvertedQuantity), "2 combos x 1 jabón")

	assert.True(t, dec(60).Equal(currentStock(t, store, "ing-a")))
	assert.True(t, dec(48).Equal(currentStock(t, store, "jabon")))

	tpl, err := store.Blends().GetByID("blend-1")
	require.NoError(t, err)
	assert.True(t, dec(4).Equal(tpl.UsageCount), "la receta anidada registra el multiplicador escalado")
}

// Línea de combo con producto borrado: advertencia, las hermanas siguen.
func TestDeduct_ComboConLineaHuerfana_SaltaConAdvertencia(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "jabon", "Jabón Artesanal", 50)
	store.Bundles().Seed(&entity.Bundle{
		ID:   "bundle-1",
		Name: "Kit Spa",
		Lines: []entity.BundleLine{
			{ProductType: entity.BundleLineProduct, ProductID: "borrado", Quantity: dec(1)},
			{ProductType: entity.BundleLineProduct, ProductID: "jabon", Quantity: dec(1)},
		},
	})
	deduction, _ := newEngine(store)

	item := entity.TransactionItem{ProductID: "bundle-1", ItemType: entity.ItemTypeBundle, Quantity: dec(1)}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-031", item), "user-1")
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Movements, 1)
	assert.NotEmpty(t, result.Warnings)
	assert.True(t, dec(49).Equal(currentStock(t, store, "jabon")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipos sin impacto y tipos desconocidos
// ──────────────────────────────────────────────────────────────────────────────

func TestDeduct_TiposSinImpacto_NoProducenMovimientos(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	items := []entity.TransactionItem{
		{ProductID: "p1", ItemType: entity.ItemTypeCustomBlend, Quantity: dec(1)},
		{ProductID: "", ItemType: entity.ItemTypeMisc, Quantity: dec(1)},
		{ProductID: "", ItemType: entity.ItemTypeConsultation, Quantity: dec(1)},
		{ProductID: "", ItemType: entity.ItemTypeService, Quantity: dec(1)},
	}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-040", items...), "user-1")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Movements)
	assert.Empty(t, result.Errors)
	assert.True(t, dec(100).Equal(currentStock(t, store, "p1")), "custom_blend no descuenta aquí")
}

// Tipo desconocido cae al handler de producto directo con advertencia.
func TestDeduct_TipoDesconocido_CaeAProductoDirecto(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	item := entity.TransactionItem{ProductID: "p1", ItemType: "promo_especial", Quantity: dec(3)}
	result, err := deduction.Deduct(context.Background(), saleTx("TXN-041", item), "user-1")
	require.NoError(t, err)

	require.Len(t, result.Movements, 1)
	assert.Equal(t, entity.MovementTypeSale, result.Movements[0].Type)
	assert.NotEmpty(t, result.Warnings)
	assert.True(t, dec(97).Equal(currentStock(t, store, "p1")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes mixtos e idempotencia
// ──────────────────────────────────────────────────────────────────────────────

// Un ítem inválido no aborta el lote: el válido se descuenta y el error queda
// registrado contra su ítem.
func TestDeduct_LoteMixto_AcumulaErroresSinAbortar(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	result, err := deduction.Deduct(context.Background(), saleTx("TXN-050",
		productItem("p1", 5),
		productItem("no-existe", 3),
	), "user-1")
	require.NoError(t, err)

	assert.True(t, result.Success, "success indica que el lote corrió completo")
	assert.Len(t, result.Movements, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no-existe")
	assert.True(t, dec(95).Equal(currentStock(t, store, "p1")))
}

// Repetir la misma transacción no descuenta dos veces: devuelve los
// movimientos ya registrados con advertencia.
func TestDeduct_Idempotente_SegundaLlamadaNoDescuenta(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	first, err := deduction.Deduct(context.Background(), saleTx("TXN-060", productItem("p1", 5)), "user-1")
	require.NoError(t, err)
	require.Len(t, first.Movements, 1)
	require.Empty(t, first.Warnings)

	second, err := deduction.Deduct(context.Background(), saleTx("TXN-060", productItem("p1", 5)), "user-1")
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.Len(t, second.Movements, 1, "devuelve los movimientos originales")
	require.Len(t, second.Warnings, 1)
	assert.Contains(t, second.Warnings[0], "ya fue procesada")
	assert.True(t, dec(95).Equal(currentStock(t, store, "p1")), "el stock no se mueve de nuevo")
}

// Referencias distintas sí procesan por separado.
func TestDeduct_ReferenciasDistintas_NoInterfieren(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	_, err := deduction.Deduct(context.Background(), saleTx("TXN-070", productItem("p1", 5)), "user-1")
	require.NoError(t, err)
	_, err = deduction.Deduct(context.Background(), saleTx("TXN-071", productItem("p1", 5)), "user-1")
	require.NoError(t, err)

	assert.True(t, dec(90).Equal(currentStock(t, store, "p1")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Claim de referencia y eventos
// ──────────────────────────────────────────────────────────────────────────────

// stubClaimer simula el claim distribuido.
type stubClaimer struct {
	wins     bool
	err      error
	claimed  []string
	released []string
}

func (s *stubClaimer) Claim(_ context.Context, key string) (bool, error) {
	s.claimed = append(s.claimed, key)
	return s.wins, s.err
}

func (s *stubClaimer) Release(_ context.Context, key string) error {
	s.released = append(s.released, key)
	return nil
}

// Si otra llamada ya reclamó la referencia, no se procesa nada.
func TestDeduct_ClaimPerdido_NoProcesa(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	log := testLog()
	guard := inventory.NewIdempotencyGuard(store.Movements())
	resolver := inventory.NewCompositionResolver(log)
	claimer := &stubClaimer{wins: false}
	deduction := inventory.NewDeductionUseCase(store, guard, resolver, claimer, nil, log)

	result, err := deduction.Deduct(context.Background(), saleTx("TXN-080", productItem("p1", 5)), "user-1")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Movements)
	assert.NotEmpty(t, result.Warnings)
	assert.True(t, dec(100).Equal(currentStock(t, store, "p1")), "nada se descuenta")
	assert.Equal(t, []string{"deduct:TXN-080"}, claimer.claimed)
}

// Si Redis falla, el claim se degrada al guard base y la venta procede.
func TestDeduct_ClaimConError_ContinuaConGuardBase(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	log := testLog()
	guard := inventory.NewIdempotencyGuard(store.Movements())
	resolver := inventory.NewCompositionResolver(log)
	claimer := &stubClaimer{err: context.DeadlineExceeded}
	deduction := inventory.NewDeductionUseCase(store, guard, resolver, claimer, nil, log)

	result, err := deduction.Deduct(context.Background(), saleTx("TXN-081", productItem("p1", 5)), "user-1")
	require.NoError(t, err)

	assert.Len(t, result.Movements, 1)
	assert.True(t, dec(95).Equal(currentStock(t, store, "p1")))
}

// recordingEvents cuenta los eventos emitidos.
type recordingEvents struct {
	movements  int
	deductions int
	reversals  int
}

func (r *recordingEvents) MovementRecorded(context.Context, *entity.Movement) { r.movements++ }
func (r *recordingEvents) DeductionCompleted(context.Context, string, int, int, int, time.Duration) {
	r.deductions++
}
func (r *recordingEvents) ReversalCompleted(context.Context, string, int, int, int, time.Duration) {
	r.reversals++
}

func TestDeduct_EmiteEventos(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	log := testLog()
	guard := inventory.NewIdempotencyGuard(store.Movements())
	resolver := inventory.NewCompositionResolver(log)
	rec := &recordingEvents{}
	deduction := inventory.NewDeductionUseCase(store, guard, resolver, nil, rec, log)

	_, err := deduction.Deduct(context.Background(), saleTx("TXN-090",
		productItem("p1", 5), productItem("p1", 3)), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, rec.movements, "un evento por movimiento")
	assert.Equal(t, 1, rec.deductions, "un evento de cierre por lote")
}

// ──────────────────────────────────────────────────────────────────────────────
// DeductInTx: sesión ambiente del caller
// ──────────────────────────────────────────────────────────────────────────────

func TestDeductInTx_UsaElScopeDelCaller(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", "Esencia de Rosa", 100)
	deduction, _ := newEngine(store)

	result, err := deduction.DeductInTx(context.Background(), store.Scope(),
		saleTx("TXN-100", productItem("p1", 5)), "user-1")
	require.NoError(t, err)

	assert.Len(t, result.Movements, 1)
	assert.True(t, dec(95).Equal(currentStock(t, store, "p1")))

	// El guard opera sobre la misma sesión: repetir no descuenta.
	again, err := deduction.DeductInTx(context.Background(), store.Scope(),
		saleTx("TXN-100", productItem("p1", 5)), "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, again.Warnings)
	assert.True(t, dec(95).Equal(currentStock(t, store, "p1")))
}
