package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/analytics"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/spreadsheet"
)

// ReportHandler reportes de ventas, descargas de artefactos y KPIs.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func dateRange(c *fiber.Ctx) dto.DateRange {
	return dto.DateRange{From: c.Query("desde"), To: c.Query("hasta")}
}

// List GET /api/reportes/ventas?desde=&hasta=
func (h *ReportHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), dateRange(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/reportes/ventas/:id
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/reportes/ventas/:id/pdf
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	a, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, a.FileName, a.ContentType, a.Content)
}

// XML GET /api/reportes/ventas/:id/xml
func (h *ReportHandler) XML(c *fiber.Ctx) error {
	a, err := h.uc.XML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, a.FileName, a.ContentType, a.Content)
}

// Verify GET /api/reportes/ventas/:id/verificar
func (h *ReportHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/reportes/ventas/:id (no revierte stock)
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// KPIs GET /api/reportes/kpis
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.KPIs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export GET /api/reportes/ventas/export?desde=&hasta=&formato=xlsx|csv
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	rows, err := h.uc.ExportRows(c.UserContext(), dateRange(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendSheet(c, "ventas", func(w io.Writer, f spreadsheet.Format) error {
		return spreadsheet.WriteSales(w, f, rows)
	})
}
