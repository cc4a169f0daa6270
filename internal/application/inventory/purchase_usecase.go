package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/domain/inventory"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

// PurchaseUseCase registra compras (manuales o importadas) y actualiza el inventario
// con costo promedio ponderado en la misma actualización del documento.
type PurchaseUseCase struct {
	docs ports.DocumentRunner
	log  *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(docs ports.DocumentRunner, log *logger.Logger) *PurchaseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseUseCase{docs: docs, log: log.Component("compras")}
}

func newID() string { return uuid.New().String() }

// Create valida y registra una compra manual.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	fecha := strings.TrimSpace(in.Fecha)
	if fecha == "" {
		return nil, domain.Invalid("fecha", "Fecha requerida.")
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "Agrega al menos 1 ítem.")
	}
	lines := make([]entity.PurchaseLine, 0, len(in.Items))
	for _, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.Qty <= 0 {
			return nil, domain.Invalid("items", "Completa producto y cantidad.")
		}
		if it.PU.IsNegative() {
			return nil, domain.Invalid("items", "El precio unitario no puede ser negativo.")
		}
		lines = append(lines, newLine(it.Qty, name, it.Code, it.PU))
	}
	p := entity.Purchase{ID: newID(), Fecha: fecha, ProveedorID: strings.TrimSpace(in.ProveedorID), Items: lines}

	var out *dto.PurchaseResponse
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		record(doc, p)
		out = toPurchaseResponse(doc, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", p.ID).Str("fecha", p.Fecha).Int("items", len(p.Items)).Msg("compra registrada")
	return out, nil
}

// Import agrupa las filas por fecha (primeros 10 caracteres) y registra una compra por fecha.
// Se omiten filas sin fecha, producto, precio o con cantidad no positiva.
func (uc *PurchaseUseCase) Import(ctx context.Context, rows []dto.PurchaseRow) (*dto.ImportResult, error) {
	res := &dto.ImportResult{}
	byFecha := map[string][]entity.PurchaseLine{}
	var order []string
	for _, r := range rows {
		fecha := strings.TrimSpace(r.Fecha)
		name := strings.TrimSpace(r.Producto)
		if fecha == "" || name == "" || r.Cantidad <= 0 || !r.PrecioUnitario.IsPositive() {
			res.Skipped++
			continue
		}
		if len(fecha) > 10 {
			fecha = fecha[:10]
		}
		if _, ok := byFecha[fecha]; !ok {
			order = append(order, fecha)
		}
		byFecha[fecha] = append(byFecha[fecha], newLine(r.Cantidad, name, r.Codigo, r.PrecioUnitario))
	}
	if len(order) == 0 {
		return res, nil
	}
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		for _, f := range order {
			record(doc, entity.Purchase{ID: newID(), Fecha: f, Items: byFecha[f]})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Added = len(order)
	uc.log.Info().Int("compras", res.Added).Int("skipped", res.Skipped).Msg("compras importadas")
	return res, nil
}

// List resumen de compras, la más reciente primero.
func (uc *PurchaseUseCase) List(ctx context.Context) ([]dto.PurchaseSummary, error) {
	var out []dto.PurchaseSummary
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = make([]dto.PurchaseSummary, 0, len(doc.Compras))
		for i := len(doc.Compras) - 1; i >= 0; i-- {
			p := doc.Compras[i]
			out = append(out, dto.PurchaseSummary{
				ID:        p.ID,
				Fecha:     p.Fecha,
				Proveedor: supplierName(doc, p.ProveedorID),
				Items:     len(p.Items),
				Total:     p.Total(),
			})
		}
		return nil
	})
	return out, err
}

// Get detalle de una compra.
func (uc *PurchaseUseCase) Get(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	var out *dto.PurchaseResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		for _, p := range doc.Compras {
			if p.ID == id {
				out = toPurchaseResponse(doc, p)
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func newLine(qty int, name, code string, pu decimal.Decimal) entity.PurchaseLine {
	return entity.PurchaseLine{
		Qty:   qty,
		Name:  name,
		Code:  strings.TrimSpace(code),
		PU:    pu,
		Total: pu.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// record agrega la compra y aplica cada línea al inventario.
func record(doc *entity.Document, p entity.Purchase) {
	doc.Compras = append(doc.Compras, p)
	for _, line := range p.Items {
		inventory.ApplyPurchaseLine(doc, line, newID)
	}
}

func supplierName(doc *entity.Document, id string) string {
	if id == "" {
		return ""
	}
	for _, s := range doc.Proveedores {
		if s.ID == id {
			return s.Razon
		}
	}
	return ""
}

func toPurchaseResponse(doc *entity.Document, p entity.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseLineResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseLineResponse{Qty: it.Qty, Name: it.Name, Code: it.Code, PU: it.PU, Total: it.Total})
	}
	return &dto.PurchaseResponse{
		ID:        p.ID,
		Fecha:     p.Fecha,
		Proveedor: supplierName(doc, p.ProveedorID),
		Items:     items,
		Total:     p.Total(),
	}
}
