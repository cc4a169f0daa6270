package inventory

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si la nueva cantidad es cero o menor, el costo es el de la entrada.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// SellPrice precio de venta = round(buyPrice * (1 + margen), 2).
func SellPrice(item entity.InventoryItem) decimal.Decimal {
	return item.BuyPrice.Mul(decimal.NewFromInt(1).Add(item.MarginPct)).Round(2)
}

// ApplyPurchaseLine suma una línea de compra al inventario del documento.
// Busca el producto por código (o por nombre si la línea no trae código); si existe
// recalcula el promedio ponderado, si no crea el producto con margen 30%.
// Devuelve el índice del producto afectado y si fue creado.
func ApplyPurchaseLine(doc *entity.Document, line entity.PurchaseLine, newID func() string) (int, bool) {
	idx := doc.MatchItem(line.Name, line.Code)
	if idx >= 0 {
		it := &doc.Inventario[idx]
		it.BuyPrice = CostCalculator(
			decimal.NewFromInt(int64(it.Qty)), it.BuyPrice,
			decimal.NewFromInt(int64(line.Qty)), line.PU,
		)
		it.Qty += line.Qty
		return idx, false
	}
	doc.Inventario = append(doc.Inventario, entity.InventoryItem{
		ID:        newID(),
		Name:      line.Name,
		Code:      line.Code,
		Qty:       line.Qty,
		BuyPrice:  line.PU,
		MarginPct: entity.DefaultMargin,
	})
	return len(doc.Inventario) - 1, true
}

// MaxQty cantidad máxima de un producto en inventario.
const MaxQty = math.MaxInt32

// ClampQty ajuste manual de cantidad: entero entre 0 y MaxQty. NaN cuenta como 0.
func ClampQty(v float64) int {
	if !(v > 0) {
		return 0
	}
	if v >= MaxQty {
		return MaxQty
	}
	return int(v)
}

// ClampMargin ajuste manual de margen: nunca negativo.
func ClampMargin(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
