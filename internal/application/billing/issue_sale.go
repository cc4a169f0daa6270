package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/application/usecase"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/domain/inventory"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

// Motivos de rechazo para métricas.
const (
	RejectInvalid  = "invalid"
	RejectStock    = "stock"
	RejectArtifact = "artifact"
	RejectStorage  = "storage"
)

// IssueSaleUseCase emite comprobantes: valida comprador y stock, congela PDF y XML,
// descuenta inventario, guarda la venta y avanza el correlativo, todo en una sola actualización.
type IssueSaleUseCase struct {
	docs     ports.DocumentRunner
	renderer ReceiptRenderer
	xml      XMLBuilder
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewIssueSaleUseCase construye el caso de uso inyectando todas sus dependencias. metrics puede ser nil.
func NewIssueSaleUseCase(
	docs ports.DocumentRunner,
	renderer ReceiptRenderer,
	xml XMLBuilder,
	metrics Metrics,
	log *logger.Logger,
) *IssueSaleUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &IssueSaleUseCase{
		docs:     docs,
		renderer: renderer,
		xml:      xml,
		metrics:  metrics,
		log:      log.Component("ventas"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *IssueSaleUseCase) WithClock(now func() time.Time) *IssueSaleUseCase {
	uc.now = now
	return uc
}

// Issue emite el comprobante. Las precondiciones se verifican en orden: tipo, fecha,
// documento del comprador, nombre, líneas y stock. Si alguna falla no hay ningún efecto.
func (uc *IssueSaleUseCase) Issue(ctx context.Context, in dto.IssueSaleRequest) (*dto.SaleResponse, error) {
	tipo := strings.TrimSpace(in.Tipo)
	fecha := strings.TrimSpace(in.Fecha)
	buyer := entity.Buyer{
		DocType: strings.ToUpper(strings.TrimSpace(in.Buyer.DocType)),
		DocNum:  strings.TrimSpace(in.Buyer.DocNum),
		Razon:   strings.TrimSpace(in.Buyer.Razon),
	}

	if err := validateRequest(tipo, fecha, buyer, in.Items); err != nil {
		uc.reject(RejectInvalid, err)
		return nil, err
	}

	var sale entity.Sale
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		items, err := snapshotItems(doc, in.Items)
		if err != nil {
			return err
		}

		serie := doc.Settings.Series[tipo]
		if serie == "" {
			serie = sunat.DefaultSeries(tipo)
		}
		numero := doc.Settings.Counters[tipo]
		if numero <= 0 {
			numero = 1
		}

		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.Total)
		}

		sale = entity.Sale{
			ID:        uuid.New().String(),
			Fecha:     fecha,
			Tipo:      tipo,
			Serie:     serie,
			Numero:    numero,
			Issuer:    entity.Issuer{RUC: doc.Settings.RUCEmisor, Razon: doc.Settings.RazonEmisor},
			Buyer:     buyer,
			Items:     items,
			Total:     total.Round(2),
			FileName:  sunat.FileName(doc.Settings.RUCEmisor, tipo, serie, numero),
			CreatedAt: uc.now().UTC(),
		}
		if err := uc.buildArtifacts(&sale, logoFrom(doc.Settings)); err != nil {
			return err
		}

		for _, it := range items {
			idx := doc.FindItem(it.ProductID)
			doc.Inventario[idx].Qty -= it.Qty
			if doc.Inventario[idx].Qty < 0 {
				doc.Inventario[idx].Qty = 0
			}
		}
		doc.Ventas = append(doc.Ventas, sale.Clone())
		if doc.Settings.Counters == nil {
			doc.Settings.Counters = map[string]int{}
		}
		doc.Settings.Counters[tipo] = numero + 1
		return nil
	})
	if err != nil {
		uc.reject(rejectReason(err), err)
		return nil, err
	}

	uc.metrics.SaleIssued(tipo)
	uc.log.Info().Str("id", sale.ID).Str("tipo", tipo).Str("serie", sale.Serie).Int("numero", sale.Numero).
		Str("total", sale.Total.StringFixed(2)).Msg("comprobante emitido")
	resp := ToSaleResponse(sale)
	return &resp, nil
}

func (uc *IssueSaleUseCase) buildArtifacts(sale *entity.Sale, logo *Logo) error {
	xmlText, err := uc.xml.Build(sale)
	if err != nil {
		return fmt.Errorf("%w: xml: %v", errArtifact, err)
	}
	digest, err := uc.xml.Digest(xmlText)
	if err != nil {
		return fmt.Errorf("%w: digest: %v", errArtifact, err)
	}
	pdf, err := uc.renderer.Render(sale, logo)
	if err != nil {
		return fmt.Errorf("%w: pdf: %v", errArtifact, err)
	}
	sale.XMLText = xmlText
	sale.XMLDigest = digest
	sale.PDF = pdf
	return nil
}

var errArtifact = errors.New("no se pudieron generar los artefactos")

func (uc *IssueSaleUseCase) reject(reason string, err error) {
	uc.metrics.SaleRejected(reason)
	uc.log.Warn().Str("reason", reason).Err(err).Msg("emisión rechazada")
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return RejectStock
	case errors.Is(err, domain.ErrInvalidInput):
		return RejectInvalid
	case errors.Is(err, errArtifact):
		return RejectArtifact
	default:
		return RejectStorage
	}
}

// validateRequest precondiciones que no dependen del documento.
func validateRequest(tipo, fecha string, buyer entity.Buyer, items []dto.SaleItemRequest) error {
	if !sunat.IsDocType(tipo) {
		return domain.Invalid("tipo", "Tipo de comprobante inválido (01, 03 o NP).")
	}
	if fecha == "" {
		return domain.Invalid("fecha", "Fecha requerida.")
	}
	if !sunat.ValidDoc(buyer.DocType, buyer.DocNum) {
		return domain.Invalid("buyer.doc_num", "Documento inválido (RUC 11 / DNI 8).")
	}
	if buyer.Razon == "" {
		return domain.Invalid("buyer.razon", "Razón social / nombre requerido.")
	}
	if len(items) == 0 {
		return domain.Invalid("items", "Agrega productos.")
	}
	for _, it := range items {
		if it.Qty < 1 {
			return domain.Invalid("items", "La cantidad de cada producto debe ser al menos 1.")
		}
	}
	return nil
}

// snapshotItems verifica existencia y stock (sumando líneas repetidas del mismo producto)
// y captura por valor nombre y precio de venta vigentes.
func snapshotItems(doc *entity.Document, lines []dto.SaleItemRequest) ([]entity.SaleItem, error) {
	requested := map[string]int{}
	for _, it := range lines {
		idx := doc.FindItem(it.ProductID)
		if idx < 0 {
			return nil, domain.Invalid("items", "Producto inválido en detalle.")
		}
		requested[it.ProductID] += it.Qty
		inv := doc.Inventario[idx]
		if inv.Qty < requested[it.ProductID] {
			return nil, &domain.StockError{ProductID: inv.ID, Name: inv.Name, Available: inv.Qty, Requested: requested[it.ProductID]}
		}
	}

	items := make([]entity.SaleItem, 0, len(lines))
	for _, it := range lines {
		inv := doc.Inventario[doc.FindItem(it.ProductID)]
		pu := inventory.SellPrice(inv)
		items = append(items, entity.SaleItem{
			ProductID: inv.ID,
			Name:      inv.Name,
			Qty:       it.Qty,
			PU:        pu,
			Total:     pu.Mul(decimal.NewFromInt(int64(it.Qty))),
		})
	}
	return items, nil
}

func logoFrom(s entity.Settings) *Logo {
	if s.LogoDataURL == nil || *s.LogoDataURL == "" {
		return nil
	}
	data, ext, err := usecase.DecodeDataURL(*s.LogoDataURL)
	if err != nil {
		return nil
	}
	return &Logo{Data: data, Ext: ext}
}

// ToSaleResponse convierte la venta a DTO (sin PDF ni XML).
func ToSaleResponse(s entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{ProductID: it.ProductID, Name: it.Name, Qty: it.Qty, PU: it.PU, Total: it.Total})
	}
	return dto.SaleResponse{
		ID:          s.ID,
		Fecha:       s.Fecha,
		Tipo:        s.Tipo,
		Serie:       s.Serie,
		Numero:      s.Numero,
		Buyer:       dto.BuyerRequest{DocType: s.Buyer.DocType, DocNum: s.Buyer.DocNum, Razon: s.Buyer.Razon},
		Items:       items,
		Total:       s.Total,
		FileName:    s.FileName,
		XMLDigest:   s.XMLDigest,
		SunatStatus: s.SunatStatus,
		CreatedAt:   s.CreatedAt,
	}
}
