package entity

// Supplier proveedor. Tipo es la etiqueta libre del documento (p. ej. RUC), sin unicidad.
type Supplier struct {
	ID    string `json:"id"`
	Tipo  string `json:"tipo"`
	Doc   string `json:"doc"`
	Razon string `json:"razon"`
}
