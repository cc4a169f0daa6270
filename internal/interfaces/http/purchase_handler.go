package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/inventory"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/spreadsheet"
)

// PurchaseHandler maneja compras; cada compra actualiza el inventario.
type PurchaseHandler struct {
	uc *inventory.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// List GET /api/compras
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/compras/:id
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/compras
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Import POST /api/compras/import (multipart, campo file). Agrupa por fecha.
func (h *PurchaseHandler) Import(c *fiber.Ctx) error {
	r, err := uploadedFile(c)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := spreadsheet.ParsePurchases(r)
	if err != nil {
		return writeError(c, sheetError(err))
	}
	res, err := h.uc.Import(c.UserContext(), rows)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Template GET /api/compras/plantilla
func (h *PurchaseHandler) Template(c *fiber.Ctx) error {
	return sendSheet(c, "plantilla_compras", spreadsheet.WritePurchaseTemplate)
}
