// Package sunat contiene los adaptadores del comprobante: XML stub, huella canónica y cliente
// HTTP del backend colaborador que valida documentos y envía a SUNAT.
package sunat

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
)

var _ billing.XMLBuilder = (*XMLBuilderService)(nil)

// RootElement raíz del XML de demostración. No es un UBL 2.1 válido ante SUNAT.
const RootElement = "DocumentStub"

// XMLBuilderService construye el XML stub de una venta congelada.
// Solo usa campos congelados de la venta, por lo que reconstruirlo produce el mismo texto.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el XML con indentación de dos espacios.
func (s *XMLBuilderService) Build(sale *entity.Sale) (string, error) {
	if sale == nil {
		return "", fmt.Errorf("sunat: venta nula")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootElement)

	em := root.CreateElement("Emisor")
	em.CreateElement("RUC").SetText(sale.Issuer.RUC)
	em.CreateElement("RazonSocial").SetText(sale.Issuer.Razon)

	cp := root.CreateElement("Comprobante")
	cp.CreateElement("Tipo").SetText(sale.Tipo)
	cp.CreateElement("Serie").SetText(sale.Serie)
	cp.CreateElement("Numero").SetText(strconv.Itoa(sale.Numero))
	cp.CreateElement("Fecha").SetText(sale.Fecha)

	by := root.CreateElement("Comprador")
	by.CreateElement("TipoDocumento").SetText(sale.Buyer.DocType)
	by.CreateElement("NumeroDocumento").SetText(sale.Buyer.DocNum)
	by.CreateElement("RazonSocial").SetText(sale.Buyer.Razon)

	det := root.CreateElement("Detalle")
	for i, it := range sale.Items {
		lineTotal := it.PU.Mul(decimal.NewFromInt(int64(it.Qty)))
		name := it.Name
		if name == "" {
			name = "Producto"
		}
		line := det.CreateElement("Line")
		line.CreateElement("ID").SetText(strconv.Itoa(i + 1))
		line.CreateElement("Description").SetText(name)
		line.CreateElement("Quantity").SetText(strconv.Itoa(it.Qty))
		line.CreateElement("UnitPrice").SetText(it.PU.StringFixed(2))
		line.CreateElement("LineTotal").SetText(lineTotal.StringFixed(2))
	}
	root.CreateElement("Total").SetText(sale.Total.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("sunat: serializar XML: %w", err)
	}
	return out, nil
}

// Digest SHA-256 (hex) de la forma canónica C14N del XML.
func (s *XMLBuilderService) Digest(xmlText string) (string, error) {
	canon, err := canonicalizeXML([]byte(xmlText))
	if err != nil {
		return "", fmt.Errorf("sunat: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
