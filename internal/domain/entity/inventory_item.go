package entity

import "github.com/shopspring/decimal"

// DefaultMargin margen asignado a un producto creado por una compra (30%).
var DefaultMargin = decimal.RequireFromString("0.30")

// InventoryItem producto en inventario. BuyPrice es el costo promedio ponderado.
type InventoryItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Qty       int             `json:"qty"`
	BuyPrice  decimal.Decimal `json:"buyPrice"`
	MarginPct decimal.Decimal `json:"marginPct"`
}
