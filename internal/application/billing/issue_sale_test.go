package billing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/state"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/storage"
)

const storeKey = "sf_demo_v1"

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeRenderer struct{ err error }

func (f *fakeRenderer) Render(sale *entity.Sale, _ *billing.Logo) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-" + sale.Serie), nil
}

type fakeXML struct{}

func (fakeXML) Build(sale *entity.Sale) (string, error) {
	return "<DocumentStub><Serie>" + sale.Serie + "</Serie></DocumentStub>", nil
}

func (fakeXML) Digest(xmlText string) (string, error) { return "digest:" + xmlText, nil }

type countingMetrics struct {
	issued   map[string]int
	rejected map[string]int
	calls    map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{issued: map[string]int{}, rejected: map[string]int{}, calls: map[string]int{}}
}

func (m *countingMetrics) SaleIssued(t string)   { m.issued[t]++ }
func (m *countingMetrics) SaleRejected(r string) { m.rejected[r]++ }
func (m *countingMetrics) CollaboratorCall(op, outcome string) {
	m.calls[op+":"+outcome]++
}

// ── helpers ───────────────────────────────────────────────────────────────────

type fixture struct {
	store    *state.Store
	repo     *storage.MemoryRepository
	renderer *fakeRenderer
	metrics  *countingMetrics
	uc       *billing.IssueSaleUseCase
}

func newFixture(t *testing.T, items ...entity.InventoryItem) *fixture {
	t.Helper()
	repo := storage.NewMemoryRepository()
	st, err := state.NewStore(repo, storeKey, state.NewSkeleton("hash"), nil)
	require.NoError(t, err)
	require.NoError(t, st.Update(context.Background(), func(doc *entity.Document) error {
		doc.Inventario = append(doc.Inventario, items...)
		return nil
	}))
	f := &fixture{store: st, repo: repo, renderer: &fakeRenderer{}, metrics: newCountingMetrics()}
	f.uc = billing.NewIssueSaleUseCase(st, f.renderer, fakeXML{}, f.metrics, nil).
		WithClock(func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) })
	return f
}

func (f *fixture) blob(t *testing.T) []byte {
	t.Helper()
	raw, err := f.repo.Get(context.Background(), storeKey)
	require.NoError(t, err)
	return raw
}

func (f *fixture) doc(t *testing.T) *entity.Document {
	t.Helper()
	doc, err := f.store.Load(context.Background())
	require.NoError(t, err)
	return doc
}

func martillo(qty int) entity.InventoryItem {
	return entity.InventoryItem{
		ID: "p1", Name: "Martillo", Code: "M1", Qty: qty,
		BuyPrice: decimal.RequireFromString("11.20"), MarginPct: entity.DefaultMargin,
	}
}

// noStatus una venta no enviada guarda sunatStatus nulo.
func noStatus(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func request(tipo string, lines ...dto.SaleItemRequest) dto.IssueSaleRequest {
	return dto.IssueSaleRequest{
		Fecha: "2024-05-02",
		Tipo:  tipo,
		Buyer: dto.BuyerRequest{DocType: "RUC", DocNum: "20999999999", Razon: "CLIENTE SAC"},
		Items: lines,
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestIssue_EmiteDescuentaStockYAvanzaCorrelativo(t *testing.T) {
	f := newFixture(t, martillo(5))

	out, err := f.uc.Issue(context.Background(), request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 2}))
	require.NoError(t, err)

	assert.Equal(t, "F001", out.Serie)
	assert.Equal(t, 1, out.Numero)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("29.12")), out.Total.String())
	assert.Equal(t, "20123456789-01-F001-00000001.XML", out.FileName)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Martillo", out.Items[0].Name)
	assert.True(t, out.Items[0].PU.Equal(decimal.RequireFromString("14.56")))

	doc := f.doc(t)
	assert.Equal(t, 3, doc.Inventario[0].Qty)
	assert.Equal(t, 2, doc.Settings.Counters["01"])
	assert.Equal(t, 1, doc.Settings.Counters["03"])
	require.Len(t, doc.Ventas, 1)
	v := doc.Ventas[0]
	assert.Equal(t, []byte("%PDF-F001"), v.PDF)
	assert.Equal(t, "digest:"+v.XMLText, v.XMLDigest)
	assert.Equal(t, entity.Issuer{RUC: state.DefaultRUC, Razon: state.DefaultRazon}, v.Issuer)
	assert.Equal(t, 1, f.metrics.issued["01"])
}

func TestIssue_CorrelativosConsecutivos(t *testing.T) {
	f := newFixture(t, martillo(10))
	for want := 1; want <= 3; want++ {
		out, err := f.uc.Issue(context.Background(), request("03", dto.SaleItemRequest{ProductID: "p1", Qty: 1}))
		require.NoError(t, err)
		assert.Equal(t, "B001", out.Serie)
		assert.Equal(t, want, out.Numero)
	}
	assert.Equal(t, 4, f.doc(t).Settings.Counters["03"])
}

func TestIssue_FalloNoModificaDocumento(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(f *fixture)
		req    dto.IssueSaleRequest
		target error
		reason string
	}{
		{
			name:   "stock insuficiente",
			req:    request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 6}),
			target: domain.ErrInsufficientStock,
			reason: billing.RejectStock,
		},
		{
			name:   "stock sumado por producto",
			req:    request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 3}, dto.SaleItemRequest{ProductID: "p1", Qty: 3}),
			target: domain.ErrInsufficientStock,
			reason: billing.RejectStock,
		},
		{
			name:   "producto inexistente",
			req:    request("01", dto.SaleItemRequest{ProductID: "nope", Qty: 1}),
			target: domain.ErrInvalidInput,
			reason: billing.RejectInvalid,
		},
		{
			name:   "fallo del PDF",
			setup:  func(f *fixture) { f.renderer.err = errors.New("sin fuente") },
			req:    request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 1}),
			reason: billing.RejectArtifact,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, martillo(5))
			if tc.setup != nil {
				tc.setup(f)
			}
			before := f.blob(t)

			_, err := f.uc.Issue(context.Background(), tc.req)
			require.Error(t, err)
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
			}
			assert.Equal(t, before, f.blob(t), "el documento persistido no debe cambiar")
			assert.Equal(t, 1, f.metrics.rejected[tc.reason])
		})
	}
}

func TestIssue_OrdenDeValidacion(t *testing.T) {
	f := newFixture(t, martillo(5))
	ctx := context.Background()

	// Tipo inválido gana aunque todo lo demás también falle.
	_, err := f.uc.Issue(ctx, dto.IssueSaleRequest{Tipo: "99"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tipo", ve.Field)

	_, err = f.uc.Issue(ctx, dto.IssueSaleRequest{Tipo: "01"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fecha", ve.Field)

	req := request("01")
	req.Buyer.DocNum = "123"
	_, err = f.uc.Issue(ctx, req)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Documento inválido (RUC 11 / DNI 8).", ve.Message)

	req = request("01")
	req.Buyer.Razon = " "
	_, err = f.uc.Issue(ctx, req)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "buyer.razon", ve.Field)

	_, err = f.uc.Issue(ctx, request("01"))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Agrega productos.", ve.Message)

	_, err = f.uc.Issue(ctx, request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 0}))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items", ve.Field)
}

func TestIssue_NotaDePedidoConDNI(t *testing.T) {
	f := newFixture(t, martillo(5))
	req := request("NP", dto.SaleItemRequest{ProductID: "p1", Qty: 1})
	req.Buyer = dto.BuyerRequest{DocType: "dni", DocNum: "12345678", Razon: "Juan"}

	out, err := f.uc.Issue(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "NP01", out.Serie)
	assert.Equal(t, "DNI", out.Buyer.DocType)
	assert.Equal(t, "20123456789-07-NP01-00000001.XML", out.FileName)
}

func TestIssue_SerieVaciaUsaPorDefecto(t *testing.T) {
	f := newFixture(t, martillo(5))
	require.NoError(t, f.store.Update(context.Background(), func(doc *entity.Document) error {
		doc.Settings.Series["03"] = ""
		return nil
	}))

	out, err := f.uc.Issue(context.Background(), request("03", dto.SaleItemRequest{ProductID: "p1", Qty: 1}))
	require.NoError(t, err)
	assert.Equal(t, "B001", out.Serie)
}

func TestIssue_LineasCapturadasPorValor(t *testing.T) {
	f := newFixture(t, martillo(5))
	out, err := f.uc.Issue(context.Background(), request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 1}))
	require.NoError(t, err)

	require.NoError(t, f.store.Update(context.Background(), func(doc *entity.Document) error {
		doc.Inventario[0].Name = "Martillo grande"
		doc.Inventario[0].BuyPrice = decimal.NewFromInt(100)
		return nil
	}))

	doc := f.doc(t)
	idx := doc.FindSale(out.ID)
	require.GreaterOrEqual(t, idx, 0)
	v := doc.Ventas[idx]
	assert.Equal(t, "Martillo", v.Items[0].Name)
	assert.True(t, v.Items[0].PU.Equal(decimal.RequireFromString("14.56")))
	assert.True(t, v.Total.Equal(decimal.RequireFromString("14.56")))
	assert.True(t, noStatus(v.SunatStatus))
}
