package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/usecase"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/spreadsheet"
)

// SupplierHandler maneja las peticiones HTTP de proveedores.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// List GET /api/proveedores
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/proveedores
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Import POST /api/proveedores/import (multipart, campo file)
func (h *SupplierHandler) Import(c *fiber.Ctx) error {
	r, err := uploadedFile(c)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := spreadsheet.ParseSuppliers(r)
	if err != nil {
		return writeError(c, sheetError(err))
	}
	res, err := h.uc.Import(c.UserContext(), rows)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Template GET /api/proveedores/plantilla
func (h *SupplierHandler) Template(c *fiber.Ctx) error {
	return sendSheet(c, "plantilla_proveedores", spreadsheet.WriteSupplierTemplate)
}

// Delete DELETE /api/proveedores/:id
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// sheetError presenta los errores de lectura de planillas como errores de validación.
func sheetError(err error) error {
	if errors.Is(err, spreadsheet.ErrEmptyFile) || errors.Is(err, spreadsheet.ErrMissingHeader) {
		return domain.Invalid("file", "El archivo está vacío o no tiene encabezado.")
	}
	return domain.Invalid("file", "No se pudo leer la planilla (.xlsx o .csv).")
}
