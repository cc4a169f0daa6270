package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// BuyerRequest datos del comprador.
type BuyerRequest struct {
	DocType string `json:"doc_type"` // RUC | DNI
	DocNum  string `json:"doc_num"`
	Razon   string `json:"razon"`
}

// IssueSaleRequest body para POST /api/ventas.
type IssueSaleRequest struct {
	Fecha string            `json:"fecha"`
	Tipo  string            `json:"tipo"` // 01 | 03 | NP
	Buyer BuyerRequest      `json:"buyer"`
	Items []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea de venta; el precio es el de venta vigente del producto.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// SaleResponse venta emitida (sin artefactos binarios).
type SaleResponse struct {
	ID          string             `json:"id"`
	Fecha       string             `json:"fecha"`
	Tipo        string             `json:"tipo"`
	Serie       string             `json:"serie"`
	Numero      int                `json:"numero"`
	Buyer       BuyerRequest       `json:"buyer"`
	Items       []SaleItemResponse `json:"items"`
	Total       decimal.Decimal    `json:"total"`
	FileName    string             `json:"file_name"`
	XMLDigest   string             `json:"xml_digest,omitempty"`
	SunatStatus json.RawMessage    `json:"sunat_status,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	PU        decimal.Decimal `json:"pu"`
	Total     decimal.Decimal `json:"total"`
}

// Resultados de la validación del documento del comprador.
const (
	ValidationValidated   = "validated"
	ValidationNotFound    = "not_found"
	ValidationUnavailable = "unavailable"
	ValidationBadFormat   = "invalid_format"
)

// ValidateBuyerResponse resultado de la validación; nunca bloquea la emisión.
type ValidateBuyerResponse struct {
	Status  string `json:"status"`
	Razon   string `json:"razon,omitempty"`
	Message string `json:"message"`
}

// SubmitResponse resultado del envío a SUNAT del último comprobante.
type SubmitResponse struct {
	SaleID      string          `json:"sale_id"`
	FileName    string          `json:"file_name"`
	SunatStatus json.RawMessage `json:"sunat_status"`
}

// Artifact archivo descargable.
type Artifact struct {
	FileName    string
	ContentType string
	Content     []byte
}
