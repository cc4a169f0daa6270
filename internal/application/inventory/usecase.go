package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/domain/inventory"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

// LedgerUseCase consulta y ajustes manuales del inventario.
// Los ajustes no recalculan el promedio: sobrescriben el valor directamente.
type LedgerUseCase struct {
	docs ports.DocumentRunner
	log  *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(docs ports.DocumentRunner, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{docs: docs, log: log.Component("inventario")}
}

// List devuelve los productos con su precio de venta.
func (uc *LedgerUseCase) List(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	var out []dto.InventoryItemResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = make([]dto.InventoryItemResponse, 0, len(doc.Inventario))
		for _, it := range doc.Inventario {
			out = append(out, ToItemResponse(it))
		}
		return nil
	})
	return out, err
}

// AdjustQuantity fija la cantidad (entero, mínimo 0).
func (uc *LedgerUseCase) AdjustQuantity(ctx context.Context, id string, qty float64) (*dto.InventoryItemResponse, error) {
	if qty > inventory.MaxQty {
		return nil, domain.Invalid("qty", "Cantidad fuera de rango.")
	}
	return uc.adjust(ctx, id, func(it *entity.InventoryItem) {
		it.Qty = inventory.ClampQty(qty)
	})
}

// AdjustMargin fija el margen (mínimo 0).
func (uc *LedgerUseCase) AdjustMargin(ctx context.Context, id string, margin decimal.Decimal) (*dto.InventoryItemResponse, error) {
	return uc.adjust(ctx, id, func(it *entity.InventoryItem) {
		it.MarginPct = inventory.ClampMargin(margin)
	})
}

func (uc *LedgerUseCase) adjust(ctx context.Context, id string, apply func(it *entity.InventoryItem)) (*dto.InventoryItemResponse, error) {
	var out dto.InventoryItemResponse
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		idx := doc.FindItem(id)
		if idx < 0 {
			return domain.ErrNotFound
		}
		apply(&doc.Inventario[idx])
		out = ToItemResponse(doc.Inventario[idx])
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", id).Int("qty", out.Qty).Str("margin", out.MarginPct.String()).Msg("producto ajustado")
	return &out, nil
}

// Remove elimina el producto. Compras y ventas que lo referencian no se tocan.
func (uc *LedgerUseCase) Remove(ctx context.Context, id string) error {
	err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		idx := doc.FindItem(id)
		if idx < 0 {
			return domain.ErrNotFound
		}
		doc.Inventario = append(doc.Inventario[:idx], doc.Inventario[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("id", id).Msg("producto eliminado")
	return nil
}

// ExportRows filas de exportación: cantidad, producto, codigo, precio_compra, margen_pct, precio_venta.
func (uc *LedgerUseCase) ExportRows(ctx context.Context) ([]dto.InventoryExportRow, error) {
	var rows []dto.InventoryExportRow
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		rows = make([]dto.InventoryExportRow, 0, len(doc.Inventario))
		for _, it := range doc.Inventario {
			rows = append(rows, dto.InventoryExportRow{
				Cantidad:     it.Qty,
				Producto:     it.Name,
				Codigo:       it.Code,
				PrecioCompra: it.BuyPrice.Round(4).String(),
				MargenPct:    it.MarginPct.Round(4).String(),
				PrecioVenta:  inventory.SellPrice(it).StringFixed(2),
			})
		}
		return nil
	})
	return rows, err
}

// ToItemResponse convierte el producto a DTO con su precio de venta.
func ToItemResponse(it entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Code:      it.Code,
		Qty:       it.Qty,
		BuyPrice:  it.BuyPrice,
		MarginPct: it.MarginPct,
		SellPrice: inventory.SellPrice(it),
	}
}
