// Package sunat contiene catálogos y validaciones de documentos usados por el facturador
// (Perú). El XML que produce el sistema es un stub de demostración, no un UBL 2.1 válido ante SUNAT.
package sunat

// =============================================================================
// Tipos de comprobante emitidos por el sistema
// =============================================================================

const (
	DocTypeFactura     = "01" // Factura (equivalente a invoice)
	DocTypeBoleta      = "03" // Boleta de venta (equivalente a receipt)
	DocTypeNotaPedido  = "NP" // Nota de pedido (documento interno, sin valor tributario)
	fileCodeNotaPedido = "07" // código que se usa en el nombre de archivo para NP
)

// DocTypes lista los tipos de comprobante en orden de presentación.
var DocTypes = []string{DocTypeFactura, DocTypeBoleta, DocTypeNotaPedido}

// defaultSeries serie por defecto de cada tipo de comprobante.
var defaultSeries = map[string]string{
	DocTypeFactura:    "F001",
	DocTypeBoleta:     "B001",
	DocTypeNotaPedido: "NP01",
}

// IsDocType indica si el código es un tipo de comprobante soportado.
func IsDocType(code string) bool {
	_, ok := defaultSeries[code]
	return ok
}

// DefaultSeries devuelve la serie de respaldo del tipo (F001, B001, NP01).
// Un tipo desconocido cae en la serie de nota de pedido, igual que el flujo de emisión.
func DefaultSeries(docType string) string {
	if s, ok := defaultSeries[docType]; ok {
		return s
	}
	return defaultSeries[DocTypeNotaPedido]
}

// DefaultSeriesMap devuelve una copia del mapa tipo -> serie por defecto.
func DefaultSeriesMap() map[string]string {
	out := make(map[string]string, len(defaultSeries))
	for k, v := range defaultSeries {
		out[k] = v
	}
	return out
}

// Title título impreso en la representación gráfica.
func Title(docType string) string {
	switch docType {
	case DocTypeFactura:
		return "FACTURA"
	case DocTypeBoleta:
		return "BOLETA DE VENTA"
	default:
		return "NOTA DE PEDIDO"
	}
}

// FileTypeCode código de tipo usado en el nombre de archivo (NP se mapea a 07).
func FileTypeCode(docType string) string {
	if docType == DocTypeNotaPedido {
		return fileCodeNotaPedido
	}
	return docType
}

// =============================================================================
// Tipos de documento de identidad del comprador
// =============================================================================

const (
	IdentityRUC = "RUC" // 11 dígitos
	IdentityDNI = "DNI" // 8 dígitos
)

// IdentityCode código del catálogo 06 (6 = RUC, 1 = DNI).
func IdentityCode(docType string) string {
	switch docType {
	case IdentityRUC:
		return "6"
	case IdentityDNI:
		return "1"
	default:
		return "0"
	}
}
