package dto

// CreateSupplierRequest body para POST /api/proveedores.
type CreateSupplierRequest struct {
	Tipo  string `json:"tipo"`
	Doc   string `json:"doc"`
	Razon string `json:"razon"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID    string `json:"id"`
	Tipo  string `json:"tipo"`
	Doc   string `json:"doc"`
	Razon string `json:"razon"`
}

// SupplierRow fila de importación de proveedores.
type SupplierRow struct {
	TipoComprobante string
	NDocumento      string
	RazonSocial     string
}

// CreateCustomerRequest body para POST /api/clientes.
type CreateCustomerRequest struct {
	DocType string `json:"doc_type"` // RUC | DNI
	DocNum  string `json:"doc_num"`
	Razon   string `json:"razon"`
	Phone   string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID      string `json:"id"`
	DocType string `json:"doc_type"`
	DocNum  string `json:"doc_num"`
	Razon   string `json:"razon"`
	Phone   string `json:"phone,omitempty"`
}
