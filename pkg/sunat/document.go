package sunat

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	rucPattern = regexp.MustCompile(`^\d{11}$`)
	dniPattern = regexp.MustCompile(`^\d{8}$`)
)

// ValidDoc valida el formato del documento de identidad: RUC exactamente 11 dígitos,
// DNI exactamente 8. Cualquier otro tipo es inválido. No consulta el padrón.
func ValidDoc(docType, number string) bool {
	switch docType {
	case IdentityRUC:
		return rucPattern.MatchString(number)
	case IdentityDNI:
		return dniPattern.MatchString(number)
	default:
		return false
	}
}

// ValidRUC valida el RUC del emisor (11 dígitos).
func ValidRUC(ruc string) bool {
	return rucPattern.MatchString(ruc)
}

// ValidateSeries valida la serie configurada para un tipo:
// factura 4 caracteres iniciando con F, boleta 4 caracteres iniciando con B.
// La serie de nota de pedido es libre.
func ValidateSeries(docType, series string) error {
	switch docType {
	case DocTypeFactura:
		if len(series) != 4 || !strings.HasPrefix(series, "F") {
			return fmt.Errorf("serie factura: 4 caracteres y debe iniciar con F (Ej: F001)")
		}
	case DocTypeBoleta:
		if len(series) != 4 || !strings.HasPrefix(series, "B") {
			return fmt.Errorf("serie boleta: 4 caracteres y debe iniciar con B (Ej: B001)")
		}
	}
	return nil
}

// FileName nombre sugerido del XML: {RUC}-{TT}-{SERIE}-{CORRELATIVO 8 dígitos}.XML
func FileName(issuerRUC, docType, series string, number int) string {
	return fmt.Sprintf("%s-%s-%s-%08d.XML", issuerRUC, FileTypeCode(docType), series, number)
}

// PDFName nombre de descarga de la representación gráfica: {SERIE}-{NUMERO}.pdf
func PDFName(series string, number int) string {
	return fmt.Sprintf("%s-%d.pdf", series, number)
}

// QRText contenido del código QR de la representación impresa:
// RUC|TIPO|SERIE|NUMERO|TOTAL|FECHA|TIPO DOC ADQUIRENTE|NUM DOC ADQUIRENTE|
// La nota de pedido no es comprobante tributario y no lleva QR.
func QRText(issuerRUC, docType, series string, number int, total, fecha, buyerDocType, buyerDocNum string) string {
	if docType != DocTypeFactura && docType != DocTypeBoleta {
		return ""
	}
	return fmt.Sprintf("%s|%s|%s|%08d|%s|%s|%s|%s|",
		issuerRUC, docType, series, number, total, fecha, IdentityCode(buyerDocType), buyerDocNum)
}
