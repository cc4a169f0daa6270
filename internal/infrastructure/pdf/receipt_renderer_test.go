package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
)

func sampleSale() *entity.Sale {
	return &entity.Sale{
		Fecha:  "2024-05-02",
		Tipo:   "03",
		Serie:  "B001",
		Numero: 12,
		Issuer: entity.Issuer{RUC: "20123456789", Razon: "MI EMPRESA S.A.C."},
		Buyer:  entity.Buyer{DocType: "DNI", DocNum: "12345678", Razon: "Juan Pérez"},
		Items: []entity.SaleItem{
			{ProductID: "p1", Name: "Martillo", Qty: 3, PU: decimal.RequireFromString("14.56"), Total: decimal.RequireFromString("43.68")},
			{ProductID: "p2", Qty: 1, PU: decimal.NewFromInt(2), Total: decimal.NewFromInt(2)},
		},
		Total:     decimal.RequireFromString("45.68"),
		CreatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestLayout(t *testing.T) {
	rc := Layout(sampleSale())

	assert.Equal(t, "MI EMPRESA S.A.C.", rc.IssuerName)
	assert.Equal(t, "RUC: 20123456789", rc.IssuerRUC)
	assert.Equal(t, "BOLETA DE VENTA", rc.Title)
	assert.Equal(t, "B001-12", rc.Number)
	assert.Equal(t, "DNI: 12345678", rc.BuyerDoc)
	assert.Equal(t, "Razón social / Nombre: Juan Pérez", rc.BuyerName)
	assert.Equal(t, "Fecha: 2024-05-02", rc.Fecha)
	assert.Equal(t, "S/ 45.68", rc.Total)
	require.Len(t, rc.Lines, 2)
	assert.Equal(t, ReceiptLine{Name: "Martillo", Qty: "3", PU: "14.56", Total: "43.68"}, rc.Lines[0])
	assert.Equal(t, "Producto", rc.Lines[1].Name)
	assert.Equal(t, "20123456789|03|B001|00000012|45.68|2024-05-02|1|12345678|", rc.QRData)
}

func TestLayout_NotaDePedidoSinQR(t *testing.T) {
	s := sampleSale()
	s.Tipo, s.Serie = "NP", "NP01"
	assert.Empty(t, Layout(s).QRData)

	out, err := NewMarotoRenderer().Render(s, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLayout_Determinista(t *testing.T) {
	assert.Equal(t, Layout(sampleSale()), Layout(sampleSale()))
}

func TestMarotoRenderer_Render(t *testing.T) {
	out, err := NewMarotoRenderer().Render(sampleSale(), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoRenderer_RenderConLogo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := NewMarotoRenderer().Render(sampleSale(), &billing.Logo{Data: buf.Bytes(), Ext: "png"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoRenderer_Nil(t *testing.T) {
	_, err := NewMarotoRenderer().Render(nil, nil)
	assert.Error(t, err)
}
