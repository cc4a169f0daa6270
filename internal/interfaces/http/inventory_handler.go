package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/inventory"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/spreadsheet"
)

// InventoryHandler ajustes manuales del inventario.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List GET /api/inventario
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// AdjustQty PATCH /api/inventario/:id/cantidad
func (h *InventoryHandler) AdjustQty(c *fiber.Ctx) error {
	var in dto.AdjustQtyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdjustQuantity(c.UserContext(), c.Params("id"), in.Qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustMargin PATCH /api/inventario/:id/margen
func (h *InventoryHandler) AdjustMargin(c *fiber.Ctx) error {
	var in dto.AdjustMarginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdjustMargin(c.UserContext(), c.Params("id"), in.MarginPct)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/inventario/:id
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export GET /api/inventario/export?formato=xlsx|csv
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	rows, err := h.uc.ExportRows(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendSheet(c, "inventario", func(w io.Writer, f spreadsheet.Format) error {
		return spreadsheet.WriteInventory(w, f, rows)
	})
}
