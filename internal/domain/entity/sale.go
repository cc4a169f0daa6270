package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Issuer datos del emisor vigentes al emitir.
type Issuer struct {
	RUC   string `json:"ruc"`
	Razon string `json:"razon"`
}

// Buyer datos del comprador copiados en la venta.
type Buyer struct {
	DocType string `json:"docType"`
	DocNum  string `json:"docNum"`
	Razon   string `json:"razon"`
}

// SaleItem línea de venta capturada por valor. Name es el nombre del producto al emitir.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Qty       int             `json:"qty"`
	PU        decimal.Decimal `json:"pu"`
	Total     decimal.Decimal `json:"total"`
}

// Sale comprobante emitido. Items, PDF, XML, FileName y Total quedan congelados;
// solo SunatStatus puede adjuntarse después. Issuer guarda el emisor de ese momento para
// poder reconstruir el XML aunque cambie la configuración.
type Sale struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Tipo        string          `json:"tipo"`
	Serie       string          `json:"serie"`
	Numero      int             `json:"numero"`
	Issuer      Issuer          `json:"emisor"`
	Buyer       Buyer           `json:"buyer"`
	Items       []SaleItem      `json:"items"`
	Total       decimal.Decimal `json:"total"`
	PDF         []byte          `json:"pdfBase64"`
	XMLText     string          `json:"xmlText"`
	XMLDigest   string          `json:"xmlDigest,omitempty"`
	FileName    string          `json:"fileName"`
	SunatStatus json.RawMessage `json:"sunatStatus"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (s Sale) Clone() Sale {
	s.Items = append([]SaleItem(nil), s.Items...)
	s.PDF = append([]byte(nil), s.PDF...)
	if s.SunatStatus != nil {
		s.SunatStatus = append(json.RawMessage(nil), s.SunatStatus...)
	}
	return s
}
