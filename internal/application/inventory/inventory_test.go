package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/inventory"
	"github.com/jhoicas/sistema-facturador/internal/application/state"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T) *state.Store {
	t.Helper()
	st, err := state.NewStore(storage.NewMemoryRepository(), "sf_demo_v1", state.NewSkeleton("hash"), nil)
	require.NoError(t, err)
	return st
}

func TestPurchaseCreate_PromedioPonderado(t *testing.T) {
	st := newStore(t)
	uc := inventory.NewPurchaseUseCase(st, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreatePurchaseRequest{Fecha: "2024-05-01", Items: []dto.PurchaseLineRequest{{Qty: 10, Name: "Martillo", Code: "M1", PU: dec("10")}}})
	require.NoError(t, err)
	p, err := uc.Create(ctx, dto.CreatePurchaseRequest{Fecha: "2024-05-02", Items: []dto.PurchaseLineRequest{{Qty: 10, Name: "martillo nuevo", Code: "M1", PU: dec("12")}}})
	require.NoError(t, err)
	assert.True(t, p.Total.Equal(dec("120")))

	ledger := inventory.NewLedgerUseCase(st, nil)
	items, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 20, items[0].Qty)
	assert.True(t, items[0].BuyPrice.Equal(dec("11")), items[0].BuyPrice.String())
	assert.True(t, items[0].SellPrice.Equal(dec("14.3")), items[0].SellPrice.String())

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, p.ID, list[0].ID)
}

func TestPurchaseCreate_Validaciones(t *testing.T) {
	uc := inventory.NewPurchaseUseCase(newStore(t), nil)
	ctx := context.Background()
	cases := []dto.CreatePurchaseRequest{
		{Items: []dto.PurchaseLineRequest{{Qty: 1, Name: "A", PU: dec("1")}}},
		{Fecha: "2024-05-01"},
		{Fecha: "2024-05-01", Items: []dto.PurchaseLineRequest{{Qty: 0, Name: "A", PU: dec("1")}}},
		{Fecha: "2024-05-01", Items: []dto.PurchaseLineRequest{{Qty: 1, Name: " ", PU: dec("1")}}},
		{Fecha: "2024-05-01", Items: []dto.PurchaseLineRequest{{Qty: 1, Name: "A", PU: dec("-1")}}},
	}
	for i, in := range cases {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

func TestPurchaseImport_AgrupaPorFecha(t *testing.T) {
	st := newStore(t)
	uc := inventory.NewPurchaseUseCase(st, nil)

	res, err := uc.Import(context.Background(), []dto.PurchaseRow{
		{Fecha: "2024-05-01T10:00", Cantidad: 2, Producto: "Clavos", PrecioUnitario: dec("0.5")},
		{Fecha: "2024-05-01", Cantidad: 1, Producto: "Martillo", Codigo: "M1", PrecioUnitario: dec("11.2")},
		{Fecha: "2024-05-03", Cantidad: 4, Producto: "Clavos", PrecioUnitario: dec("0.5")},
		{Fecha: "2024-05-03", Cantidad: 0, Producto: "Brocha", PrecioUnitario: dec("3")},
		{Fecha: "", Cantidad: 1, Producto: "Brocha", PrecioUnitario: dec("3")},
		{Fecha: "2024-05-03", Cantidad: 1, Producto: "Brocha", PrecioUnitario: decimal.Zero},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.ImportResult{Added: 2, Skipped: 3}, *res)

	doc, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Compras, 2)
	assert.Equal(t, "2024-05-01", doc.Compras[0].Fecha)
	assert.Len(t, doc.Compras[0].Items, 2)
	require.Len(t, doc.Inventario, 2)
	assert.Equal(t, 6, doc.Inventario[doc.MatchItem("clavos", "")].Qty)
}

func TestLedger_Ajustes(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.Update(context.Background(), func(doc *entity.Document) error {
		doc.Inventario = append(doc.Inventario, entity.InventoryItem{ID: "p1", Name: "Martillo", Code: "M1", Qty: 5, BuyPrice: dec("11.2"), MarginPct: entity.DefaultMargin})
		return nil
	}))
	uc := inventory.NewLedgerUseCase(st, nil)
	ctx := context.Background()

	out, err := uc.AdjustQuantity(ctx, "p1", -3)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Qty)
	out, err = uc.AdjustQuantity(ctx, "p1", 7.9)
	require.NoError(t, err)
	assert.Equal(t, 7, out.Qty)

	_, err = uc.AdjustQuantity(ctx, "p1", 1e20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Cantidad fuera de rango.", domain.UserMessage(err))

	out, err = uc.AdjustMargin(ctx, "p1", dec("-0.1"))
	require.NoError(t, err)
	assert.True(t, out.MarginPct.IsZero())
	assert.True(t, out.SellPrice.Equal(dec("11.2")))

	rows, err := uc.ExportRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dto.InventoryExportRow{Cantidad: 7, Producto: "Martillo", Codigo: "M1", PrecioCompra: "11.2", MargenPct: "0", PrecioVenta: "11.20"}, rows[0])

	_, err = uc.AdjustQuantity(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, uc.Remove(ctx, "p1"))
	assert.ErrorIs(t, uc.Remove(ctx, "p1"), domain.ErrNotFound)
}
