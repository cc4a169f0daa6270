package dto

import "github.com/shopspring/decimal"

// InventoryItemResponse producto con su precio de venta calculado.
type InventoryItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Qty       int             `json:"qty"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	MarginPct decimal.Decimal `json:"margin_pct"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

// AdjustQtyRequest body para PATCH /api/inventario/:id/cantidad.
type AdjustQtyRequest struct {
	Qty float64 `json:"qty"`
}

// AdjustMarginRequest body para PATCH /api/inventario/:id/margen.
type AdjustMarginRequest struct {
	MarginPct decimal.Decimal `json:"margin_pct"`
}

// InventoryExportRow fila de exportación del inventario.
type InventoryExportRow struct {
	Cantidad     int
	Producto     string
	Codigo       string
	PrecioCompra string
	MargenPct    string
	PrecioVenta  string
}
