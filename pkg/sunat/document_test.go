package sunat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

func TestValidDoc(t *testing.T) {
	cases := []struct {
		docType string
		number  string
		want    bool
	}{
		{"RUC", "12345678901", true},
		{"RUC", "1234", false},
		{"DNI", "12345678", true},
		{"DNI", "123", false},
		{"DNI", "1234567a", false},
		{"RUC", "123456789012", false},
		{"CE", "12345678", false},
		{"ruc", "12345678901", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, sunat.ValidDoc(c.docType, c.number), "%s %s", c.docType, c.number)
	}
}

func TestValidateSeries(t *testing.T) {
	assert.NoError(t, sunat.ValidateSeries(sunat.DocTypeFactura, "F002"))
	assert.Error(t, sunat.ValidateSeries(sunat.DocTypeFactura, "B001"))
	assert.Error(t, sunat.ValidateSeries(sunat.DocTypeFactura, "F01"))
	assert.NoError(t, sunat.ValidateSeries(sunat.DocTypeBoleta, "B010"))
	assert.Error(t, sunat.ValidateSeries(sunat.DocTypeBoleta, "F001"))
	assert.NoError(t, sunat.ValidateSeries(sunat.DocTypeNotaPedido, "PEDIDOS"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "20123456789-01-F001-00000007.XML", sunat.FileName("20123456789", "01", "F001", 7))
	assert.Equal(t, "20123456789-03-B001-00000123.XML", sunat.FileName("20123456789", "03", "B001", 123))
	assert.Equal(t, "20123456789-07-NP01-00000001.XML", sunat.FileName("20123456789", "NP", "NP01", 1))
	assert.Equal(t, "F001-7.pdf", sunat.PDFName("F001", 7))
}

func TestDefaultSeriesYTitulos(t *testing.T) {
	assert.Equal(t, "F001", sunat.DefaultSeries("01"))
	assert.Equal(t, "B001", sunat.DefaultSeries("03"))
	assert.Equal(t, "NP01", sunat.DefaultSeries("NP"))
	assert.Equal(t, "NP01", sunat.DefaultSeries("99"))
	assert.Equal(t, "BOLETA DE VENTA", sunat.Title("03"))
	assert.True(t, sunat.IsDocType("NP"))
	assert.False(t, sunat.IsDocType("07"))
}

func TestQRText(t *testing.T) {
	assert.Equal(t, "20123456789|03|B001|00000012|45.68|2024-05-02|1|12345678|",
		sunat.QRText("20123456789", "03", "B001", 12, "45.68", "2024-05-02", "DNI", "12345678"))
	assert.Equal(t, "20123456789|01|F001|00000001|29.12|2024-05-02|6|20999999999|",
		sunat.QRText("20123456789", "01", "F001", 1, "29.12", "2024-05-02", "RUC", "20999999999"))
	assert.Empty(t, sunat.QRText("20123456789", "NP", "NP01", 1, "1.00", "2024-05-02", "DNI", "12345678"))
}
