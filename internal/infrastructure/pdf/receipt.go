package pdf

import (
	"fmt"

	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

// Receipt contenido textual de la representación gráfica, ya formateado.
// Se deriva solo de campos congelados de la venta.
type Receipt struct {
	IssuerName string
	IssuerRUC  string
	Title      string
	Number     string
	BuyerDoc   string
	BuyerName  string
	Fecha      string
	Lines      []ReceiptLine
	Total      string
	QRData     string // vacío para nota de pedido
}

// ReceiptLine fila de la tabla "Detalle".
type ReceiptLine struct {
	Name  string
	Qty   string
	PU    string
	Total string
}

// Layout arma el contenido del comprobante.
func Layout(sale *entity.Sale) Receipt {
	r := Receipt{
		IssuerName: sale.Issuer.Razon,
		IssuerRUC:  "RUC: " + sale.Issuer.RUC,
		Title:      sunat.Title(sale.Tipo),
		Number:     fmt.Sprintf("%s-%d", sale.Serie, sale.Numero),
		BuyerDoc:   fmt.Sprintf("%s: %s", sale.Buyer.DocType, sale.Buyer.DocNum),
		BuyerName:  "Razón social / Nombre: " + sale.Buyer.Razon,
		Fecha:      "Fecha: " + sale.Fecha,
		Total:      "S/ " + sale.Total.StringFixed(2),
		QRData: sunat.QRText(sale.Issuer.RUC, sale.Tipo, sale.Serie, sale.Numero,
			sale.Total.StringFixed(2), sale.Fecha, sale.Buyer.DocType, sale.Buyer.DocNum),
	}
	for _, it := range sale.Items {
		name := it.Name
		if name == "" {
			name = "Producto"
		}
		r.Lines = append(r.Lines, ReceiptLine{
			Name:  name,
			Qty:   fmt.Sprintf("%d", it.Qty),
			PU:    it.PU.StringFixed(2),
			Total: it.Total.StringFixed(2),
		})
	}
	return r
}
