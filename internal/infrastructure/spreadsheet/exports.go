package spreadsheet

import (
	"io"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
)

var (
	InventoryHeader = []string{"cantidad", "producto", "codigo", "precio_compra", "margen_pct", "precio_venta"}
	SalesHeader     = []string{"fecha", "tipo", "serie", "numero", "doc_cliente", "razon_cliente", "total"}
)

// WriteInventory en xlsx cantidades, precios y margen quedan como celdas numéricas.
func WriteInventory(w io.Writer, format Format, rows []dto.InventoryExportRow) error {
	recs := make([][]any, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, []any{
			r.Cantidad, r.Producto, r.Codigo, amount(r.PrecioCompra), amount(r.MargenPct), amount(r.PrecioVenta),
		})
	}
	return writeAll(w, format, InventoryHeader, recs)
}

func WriteSales(w io.Writer, format Format, rows []dto.SalesExportRow) error {
	recs := make([][]any, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, []any{
			r.Fecha, r.Tipo, r.Serie, r.Numero, r.DocCliente, r.RazonCliente, amount(r.Total),
		})
	}
	return writeAll(w, format, SalesHeader, recs)
}
