package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
)

// SaleHandler emisión de comprobantes y comunicación con el colaborador SUNAT.
type SaleHandler struct {
	issue *billing.IssueSaleUseCase
	sunat *billing.SunatUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(issue *billing.IssueSaleUseCase, sunat *billing.SunatUseCase) *SaleHandler {
	return &SaleHandler{issue: issue, sunat: sunat}
}

// Issue POST /api/ventas
func (h *SaleHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.issue.Issue(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ValidateBuyer GET /api/ventas/validar/:tipo/:numero
// Siempre responde 200: el resultado no bloquea la emisión.
func (h *SaleHandler) ValidateBuyer(c *fiber.Ctx) error {
	return c.JSON(h.sunat.ValidateBuyer(c.UserContext(), c.Params("tipo"), c.Params("numero")))
}

// SubmitLast POST /api/ventas/enviar: envía el último comprobante emitido.
func (h *SaleHandler) SubmitLast(c *fiber.Ctx) error {
	out, err := h.sunat.SubmitLast(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit POST /api/ventas/:id/enviar
func (h *SaleHandler) Submit(c *fiber.Ctx) error {
	out, err := h.sunat.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
