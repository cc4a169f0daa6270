package http

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/spreadsheet"
)

// uploadedFile lee el campo multipart "file".
func uploadedFile(c *fiber.Ctx) (io.Reader, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, domain.Invalid("file", "Adjunta una planilla (.xlsx o .csv) en el campo 'file'.")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	return bytes.NewReader(data), nil
}

// sendSheet escribe la planilla como descarga. Por defecto xlsx; ?formato=csv la pide en CSV.
func sendSheet(c *fiber.Ctx, baseName string, write func(io.Writer, spreadsheet.Format) error) error {
	format, ok := spreadsheet.ParseFormat(c.Query("formato"))
	if !ok {
		return writeError(c, domain.Invalid("formato", "Formato no soportado: usa xlsx o csv."))
	}
	var buf bytes.Buffer
	if err := write(&buf, format); err != nil {
		return writeError(c, err)
	}
	return sendFile(c, baseName+format.Ext(), format.ContentType(), buf.Bytes())
}

func sendFile(c *fiber.Ctx, fileName, contentType string, content []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Send(content)
}
