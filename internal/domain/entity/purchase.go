package entity

import "github.com/shopspring/decimal"

// Purchase compra registrada; sus líneas no se modifican después de guardarse.
type Purchase struct {
	ID          string         `json:"id"`
	Fecha       string         `json:"fecha"` // YYYY-MM-DD
	ProveedorID string         `json:"proveedorId,omitempty"`
	Items       []PurchaseLine `json:"items"`
}

// PurchaseLine línea de compra; el código puede ir vacío.
type PurchaseLine struct {
	Qty   int             `json:"qty"`
	Name  string          `json:"name"`
	Code  string          `json:"code"`
	PU    decimal.Decimal `json:"pu"`
	Total decimal.Decimal `json:"total"`
}

// Total suma de los totales de línea.
func (p Purchase) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Total)
	}
	return total
}
