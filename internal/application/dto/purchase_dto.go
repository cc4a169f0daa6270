package dto

import "github.com/shopspring/decimal"

// CreatePurchaseRequest body para POST /api/compras.
type CreatePurchaseRequest struct {
	Fecha       string                `json:"fecha"`
	ProveedorID string                `json:"proveedor_id,omitempty"`
	Items       []PurchaseLineRequest `json:"items"`
}

// PurchaseLineRequest línea de compra.
type PurchaseLineRequest struct {
	Qty  int             `json:"qty"`
	Name string          `json:"name"`
	Code string          `json:"code,omitempty"`
	PU   decimal.Decimal `json:"pu"`
}

// PurchaseRow fila de importación de compras.
type PurchaseRow struct {
	Fecha          string
	Cantidad       int
	Producto       string
	Codigo         string
	PrecioUnitario decimal.Decimal
}

// PurchaseSummary fila del listado de compras.
type PurchaseSummary struct {
	ID        string          `json:"id"`
	Fecha     string          `json:"fecha"`
	Proveedor string          `json:"proveedor,omitempty"`
	Items     int             `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// PurchaseResponse detalle de una compra.
type PurchaseResponse struct {
	ID        string                 `json:"id"`
	Fecha     string                 `json:"fecha"`
	Proveedor string                 `json:"proveedor,omitempty"`
	Items     []PurchaseLineResponse `json:"items"`
	Total     decimal.Decimal        `json:"total"`
}

// PurchaseLineResponse línea de compra en respuestas.
type PurchaseLineResponse struct {
	Qty   int             `json:"qty"`
	Name  string          `json:"name"`
	Code  string          `json:"code"`
	PU    decimal.Decimal `json:"pu"`
	Total decimal.Decimal `json:"total"`
}
