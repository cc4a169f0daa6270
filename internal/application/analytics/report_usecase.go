// Package analytics contiene los casos de uso de reportes sobre el historial de ventas.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

const topProducts = 10 // tamaño de cada ranking

// ReportUseCase lectura y agregación del historial de ventas, descargas y eliminación.
type ReportUseCase struct {
	docs ports.DocumentRunner
	xml  billing.XMLBuilder
	log  *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(docs ports.DocumentRunner, xml billing.XMLBuilder, log *logger.Logger) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{docs: docs, xml: xml, log: log.Component("reportes")}
}

// List ventas del rango (inclusivo), la más reciente primero.
func (uc *ReportUseCase) List(ctx context.Context, r dto.DateRange) ([]dto.SaleResponse, error) {
	var out []dto.SaleResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = make([]dto.SaleResponse, 0, len(doc.Ventas))
		for i := len(doc.Ventas) - 1; i >= 0; i-- {
			if r.Contains(doc.Ventas[i].Fecha) {
				out = append(out, billing.ToSaleResponse(doc.Ventas[i]))
			}
		}
		return nil
	})
	return out, err
}

// Get una venta por id.
func (uc *ReportUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sale(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := billing.ToSaleResponse(*sale)
	return &resp, nil
}

// PDF devuelve el PDF congelado como {serie}-{numero}.pdf.
func (uc *ReportUseCase) PDF(ctx context.Context, id string) (*dto.Artifact, error) {
	sale, err := uc.sale(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.Artifact{FileName: sunat.PDFName(sale.Serie, sale.Numero), ContentType: "application/pdf", Content: sale.PDF}, nil
}

// XML devuelve el XML congelado bajo su nombre de archivo.
func (uc *ReportUseCase) XML(ctx context.Context, id string) (*dto.Artifact, error) {
	sale, err := uc.sale(ctx, id)
	if err != nil {
		return nil, err
	}
	name := sale.FileName
	if name == "" {
		name = fmt.Sprintf("%s-%d.XML", sale.Serie, sale.Numero)
	}
	return &dto.Artifact{FileName: name, ContentType: "application/xml", Content: []byte(sale.XMLText)}, nil
}

// Delete elimina la venta del historial. No revierte el stock ni el correlativo.
func (uc *ReportUseCase) Delete(ctx context.Context, id string) error {
	var removed entity.Sale
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		idx := doc.FindSale(id)
		if idx < 0 {
			return domain.ErrNotFound
		}
		removed = doc.Ventas[idx]
		doc.Ventas = append(doc.Ventas[:idx], doc.Ventas[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("id", id).Str("serie", removed.Serie).Int("numero", removed.Numero).
		Msg("comprobante eliminado del reporte (stock no revertido)")
	return nil
}

// KPIs rankings de ganancia bruta Σ(pu - costo actual)·qty y de unidades vendidas, top 10.
// El costo es el promedio vigente del producto; si el producto ya no existe se usa 0.
func (uc *ReportUseCase) KPIs(ctx context.Context) (*dto.KPIResponse, error) {
	var out *dto.KPIResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = computeKPIs(doc)
		return nil
	})
	return out, err
}

type accumulator struct {
	name     string
	profit   decimal.Decimal
	rotation decimal.Decimal
}

// computeKPIs agrupa por ID de producto, no por nombre: dos productos homónimos
// quedan separados y uno renombrado conserva sus ventas anteriores.
func computeKPIs(doc *entity.Document) *dto.KPIResponse {
	acc := map[string]*accumulator{}
	var keys []string
	for _, v := range doc.Ventas {
		for _, it := range v.Items {
			key := it.ProductID
			a, ok := acc[key]
			if !ok {
				a = &accumulator{name: productLabel(doc, it)}
				acc[key] = a
				keys = append(keys, key)
			}
			buy := decimal.Zero
			if idx := doc.FindItem(it.ProductID); idx >= 0 {
				buy = doc.Inventario[idx].BuyPrice
			}
			qty := decimal.NewFromInt(int64(it.Qty))
			a.profit = a.profit.Add(it.PU.Sub(buy).Mul(qty))
			a.rotation = a.rotation.Add(qty)
		}
	}

	profit := make([]dto.RankingEntry, 0, len(keys))
	rotation := make([]dto.RankingEntry, 0, len(keys))
	for _, k := range keys {
		a := acc[k]
		profit = append(profit, dto.RankingEntry{ProductID: k, Name: a.name, Value: a.profit.Round(2)})
		rotation = append(rotation, dto.RankingEntry{ProductID: k, Name: a.name, Value: a.rotation})
	}
	return &dto.KPIResponse{Profit: top(profit), Rotation: top(rotation)}
}

func productLabel(doc *entity.Document, it entity.SaleItem) string {
	if idx := doc.FindItem(it.ProductID); idx >= 0 {
		return doc.Inventario[idx].Name
	}
	if it.Name != "" {
		return it.Name
	}
	if it.ProductID != "" {
		return it.ProductID
	}
	return "Producto"
}

func top(entries []dto.RankingEntry) []dto.RankingEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if c := entries[i].Value.Cmp(entries[j].Value); c != 0 {
			return c > 0
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > topProducts {
		entries = entries[:topProducts]
	}
	return entries
}

// ExportRows filas de exportación de ventas del rango, en orden de emisión.
func (uc *ReportUseCase) ExportRows(ctx context.Context, r dto.DateRange) ([]dto.SalesExportRow, error) {
	var rows []dto.SalesExportRow
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		for _, v := range doc.Ventas {
			if !r.Contains(v.Fecha) {
				continue
			}
			rows = append(rows, dto.SalesExportRow{
				Fecha:        v.Fecha,
				Tipo:         v.Tipo,
				Serie:        v.Serie,
				Numero:       v.Numero,
				DocCliente:   v.Buyer.DocNum,
				RazonCliente: v.Buyer.Razon,
				Total:        v.Total.StringFixed(2),
			})
		}
		return nil
	})
	return rows, err
}

// Verify comprueba que el XML congelado coincide con su huella y que reconstruirlo desde la
// venta guardada produce exactamente el mismo texto.
func (uc *ReportUseCase) Verify(ctx context.Context, id string) (*dto.VerifyResponse, error) {
	sale, err := uc.sale(ctx, id)
	if err != nil {
		return nil, err
	}
	digest, err := uc.xml.Digest(sale.XMLText)
	if err != nil {
		return nil, fmt.Errorf("verificar: %w", err)
	}
	rebuilt, err := uc.xml.Build(sale)
	if err != nil {
		return nil, fmt.Errorf("verificar: %w", err)
	}
	return &dto.VerifyResponse{
		SaleID:        sale.ID,
		DigestMatches: sale.XMLDigest != "" && digest == sale.XMLDigest,
		Reproducible:  rebuilt == sale.XMLText,
		Digest:        digest,
	}, nil
}

func (uc *ReportUseCase) sale(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		idx := doc.FindSale(id)
		if idx < 0 {
			return domain.ErrNotFound
		}
		s := doc.Ventas[idx]
		out = &s
		return nil
	})
	return out, err
}
