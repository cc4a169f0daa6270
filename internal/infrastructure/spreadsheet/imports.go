package spreadsheet

import (
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
)

// Encabezados de las plantillas de importación.
var (
	SupplierHeader = []string{"tipo_comprobante", "n_documento", "razon_social"}
	PurchaseHeader = []string{"fecha(YYYY-MM-DD)", "cantidad", "producto", "codigo(opcional)", "precio_unitario"}
)

var maxQty = decimal.NewFromInt(math.MaxInt32)

// ParseSuppliers columnas: tipo_comprobante, n_documento, razon_social.
// No filtra filas incompletas: eso lo decide el caso de uso.
func ParseSuppliers(r io.Reader) ([]dto.SupplierRow, error) {
	recs, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.SupplierRow{
			TipoComprobante: field(rec, 0),
			NDocumento:      field(rec, 1),
			RazonSocial:     field(rec, 2),
		})
	}
	return out, nil
}

// ParsePurchases columnas: fecha, cantidad, producto, codigo, precio_unitario.
// Cantidades no enteras, ilegibles o fuera de rango quedan en 0 y precios
// ilegibles en cero, de modo que el caso de uso descarte la fila.
func ParsePurchases(r io.Reader) ([]dto.PurchaseRow, error) {
	recs, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.PurchaseRow{
			Fecha:          field(rec, 0),
			Cantidad:       parseQty(field(rec, 1)),
			Producto:       field(rec, 2),
			Codigo:         field(rec, 3),
			PrecioUnitario: parseMoney(field(rec, 4)),
		})
	}
	return out, nil
}

func parseQty(s string) int {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() || d.Abs().GreaterThan(maxQty) {
		return 0
	}
	return int(d.IntPart())
}

func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// WriteSupplierTemplate plantilla de proveedores con una fila de ejemplo.
func WriteSupplierTemplate(w io.Writer, format Format) error {
	return writeAll(w, format, SupplierHeader, [][]any{
		{"Factura", "20123456789", "PROVEEDOR EJEMPLO S.A.C."},
	})
}

// WritePurchaseTemplate plantilla de compras con una fila de ejemplo.
func WritePurchaseTemplate(w io.Writer, format Format) error {
	return writeAll(w, format, PurchaseHeader, [][]any{
		{"2025-12-24", 2, "Jabón líquido 1L", "JB001", amount("12.50")},
	})
}
