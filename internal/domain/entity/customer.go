package entity

// Customer representa un cliente (comprador frecuente).
type Customer struct {
	ID      string `json:"id"`
	DocType string `json:"docType"` // RUC o DNI
	DocNum  string `json:"docNum"`
	Razon   string `json:"razon"`
	Phone   string `json:"phone"`
}

// Buyer devuelve la ficha del comprador para prellenar una venta.
func (c Customer) Buyer() Buyer {
	return Buyer{DocType: c.DocType, DocNum: c.DocNum, Razon: c.Razon}
}
