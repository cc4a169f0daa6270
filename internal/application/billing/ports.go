package billing

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
)

// Logo imagen del emisor para la representación gráfica.
type Logo struct {
	Data []byte
	Ext  string // png | jpg
}

// ReceiptRenderer genera el PDF de la venta. Debe ser determinista para una misma venta.
type ReceiptRenderer interface {
	Render(sale *entity.Sale, logo *Logo) ([]byte, error)
}

// XMLBuilder genera el XML stub de la venta y su huella canónica (SHA-256 de la forma C14N).
type XMLBuilder interface {
	Build(sale *entity.Sale) (string, error)
	Digest(xmlText string) (string, error)
}

// ValidationResult respuesta del colaborador a GET /api/validate/{tipo}/{numero}.
type ValidationResult struct {
	OK    bool   `json:"ok"`
	Razon string `json:"razon,omitempty"`
}

// Collaborator backend externo que valida documentos y envía comprobantes a SUNAT.
// Cualquier error (incluido "no configurado") se reporta envuelto en domain.ErrExternalService.
type Collaborator interface {
	ValidateDocument(ctx context.Context, docType, docNum string) (*ValidationResult, error)
	SendDocument(ctx context.Context, fileName, xmlText string) (json.RawMessage, error)
}

// Metrics contadores del flujo de emisión.
type Metrics interface {
	SaleIssued(docType string)
	SaleRejected(reason string)
	CollaboratorCall(operation, outcome string)
}

type nopMetrics struct{}

func (nopMetrics) SaleIssued(string) {}
func (nopMetrics) SaleRejected(string) {}
func (nopMetrics) CollaboratorCall(string, string) {}
