package analytics_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/application/analytics"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/state"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/storage"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/sunat"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(t *testing.T, id, fecha string, numero int, items ...entity.SaleItem) entity.Sale {
	t.Helper()
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}
	s := entity.Sale{
		ID: id, Fecha: fecha, Tipo: "03", Serie: "B001", Numero: numero,
		Issuer: entity.Issuer{RUC: state.DefaultRUC, Razon: state.DefaultRazon},
		Buyer:  entity.Buyer{DocType: "DNI", DocNum: "12345678", Razon: "Ana"},
		Items:  items, Total: total, PDF: []byte("%PDF-1.3"),
		FileName: fmt.Sprintf("20123456789-03-B001-%08d.XML", numero),
	}
	xb := sunat.NewXMLBuilderService()
	xmlText, err := xb.Build(&s)
	require.NoError(t, err)
	digest, err := xb.Digest(xmlText)
	require.NoError(t, err)
	s.XMLText, s.XMLDigest = xmlText, digest
	return s
}

func line(id, name string, qty int, pu string) entity.SaleItem {
	p := dec(pu)
	return entity.SaleItem{ProductID: id, Name: name, Qty: qty, PU: p, Total: p.Mul(decimal.NewFromInt(int64(qty)))}
}

func newReports(t *testing.T, inv []entity.InventoryItem, ventas ...entity.Sale) (*analytics.ReportUseCase, *state.Store) {
	t.Helper()
	st, err := state.NewStore(storage.NewMemoryRepository(), "sf_demo_v1", state.NewSkeleton("hash"), nil)
	require.NoError(t, err)
	require.NoError(t, st.Update(context.Background(), func(doc *entity.Document) error {
		doc.Inventario = append(doc.Inventario, inv...)
		doc.Ventas = append(doc.Ventas, ventas...)
		return nil
	}))
	return analytics.NewReportUseCase(st, sunat.NewXMLBuilderService(), nil), st
}

func TestList_RangoYOrden(t *testing.T) {
	uc, _ := newReports(t, nil,
		sale(t, "a", "2024-05-01", 1, line("p1", "Martillo", 1, "10")),
		sale(t, "b", "2024-05-10", 2, line("p1", "Martillo", 1, "10")),
		sale(t, "c", "2024-06-01", 3, line("p1", "Martillo", 1, "10")),
	)
	ctx := context.Background()

	all, err := uc.List(ctx, dto.DateRange{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)

	may, err := uc.List(ctx, dto.DateRange{From: "2024-05-01", To: "2024-05-31"})
	require.NoError(t, err)
	require.Len(t, may, 2)
	assert.Equal(t, []string{"b", "a"}, []string{may[0].ID, may[1].ID})

	rows, err := uc.ExportRows(ctx, dto.DateRange{From: "2024-05-05"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Numero)
	assert.Equal(t, "10.00", rows[0].Total)
	assert.Equal(t, "Ana", rows[0].RazonCliente)
}

func TestDelete_NoRevierteStock(t *testing.T) {
	inv := []entity.InventoryItem{{ID: "p1", Name: "Martillo", Qty: 3, BuyPrice: dec("8"), MarginPct: entity.DefaultMargin}}
	uc, st := newReports(t, inv, sale(t, "a", "2024-05-01", 1, line("p1", "Martillo", 2, "10.40")))
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "a"))
	assert.ErrorIs(t, uc.Delete(ctx, "a"), domain.ErrNotFound)

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Ventas)
	assert.Equal(t, 3, doc.Inventario[0].Qty)
	assert.Equal(t, 1, doc.Settings.Counters["03"])
}

func TestKPIs_GananciaYRotacion(t *testing.T) {
	inv := []entity.InventoryItem{
		{ID: "p1", Name: "Martillo", Qty: 10, BuyPrice: dec("8"), MarginPct: entity.DefaultMargin},
		{ID: "p2", Name: "Clavos", Qty: 100, BuyPrice: dec("0.50"), MarginPct: entity.DefaultMargin},
	}
	uc, _ := newReports(t, inv,
		sale(t, "a", "2024-05-01", 1, line("p1", "Martillo", 2, "10.40"), line("p2", "Clavos", 10, "0.65")),
		sale(t, "b", "2024-05-02", 2, line("p2", "Clavos", 20, "0.65"), line("gone", "Serrucho", 1, "25")),
	)

	k, err := uc.KPIs(context.Background())
	require.NoError(t, err)

	require.Len(t, k.Profit, 3)
	// Producto eliminado del inventario: costo 0, ganancia = precio.
	assert.Equal(t, "Serrucho", k.Profit[0].Name)
	assert.True(t, k.Profit[0].Value.Equal(dec("25")))
	assert.Equal(t, "Martillo", k.Profit[1].Name)
	assert.True(t, k.Profit[1].Value.Equal(dec("4.8")), k.Profit[1].Value.String())
	assert.True(t, k.Profit[2].Value.Equal(dec("4.5")), k.Profit[2].Value.String())

	require.Len(t, k.Rotation, 3)
	assert.Equal(t, "Clavos", k.Rotation[0].Name)
	assert.True(t, k.Rotation[0].Value.Equal(dec("30")))
}

func TestKPIs_Top10(t *testing.T) {
	var items []entity.SaleItem
	for i := 0; i < 12; i++ {
		items = append(items, line(fmt.Sprintf("x%d", i), fmt.Sprintf("P%02d", i), i+1, "1"))
	}
	uc, _ := newReports(t, nil, sale(t, "a", "2024-05-01", 1, items...))

	k, err := uc.KPIs(context.Background())
	require.NoError(t, err)
	assert.Len(t, k.Profit, 10)
	assert.Len(t, k.Rotation, 10)
	assert.True(t, k.Rotation[0].Value.Equal(dec("12")))
}

func TestArtefactosYVerificacion(t *testing.T) {
	uc, st := newReports(t, nil, sale(t, "a", "2024-05-01", 1, line("p1", "Martillo", 2, "10.40")))
	ctx := context.Background()

	pdf, err := uc.PDF(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "B001-1.pdf", pdf.FileName)
	assert.Equal(t, []byte("%PDF-1.3"), pdf.Content)

	x, err := uc.XML(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "20123456789-03-B001-00000001.XML", x.FileName)
	assert.Contains(t, string(x.Content), "<Total>20.80</Total>")

	v, err := uc.Verify(ctx, "a")
	require.NoError(t, err)
	assert.True(t, v.DigestMatches)
	assert.True(t, v.Reproducible)

	require.NoError(t, st.Update(ctx, func(doc *entity.Document) error {
		doc.Ventas[0].XMLText += "<!-- editado -->"
		return nil
	}))
	v, err = uc.Verify(ctx, "a")
	require.NoError(t, err)
	assert.False(t, v.Reproducible)

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
