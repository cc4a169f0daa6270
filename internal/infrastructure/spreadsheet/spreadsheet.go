// Package spreadsheet lee las planillas de importación y escribe las exportaciones.
// El formato por defecto es .xlsx (primera hoja del libro). Los archivos CSV se
// siguen aceptando: pueden venir en UTF-8 (con o sin BOM) o en Windows-1252, que
// es lo que guarda Excel en equipos con configuración regional en español.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrEmptyFile     = errors.New("spreadsheet: archivo vacío")
	ErrMissingHeader = errors.New("spreadsheet: falta la fila de encabezado")
)

// Format formato de salida de una planilla.
type Format int

const (
	FormatXLSX Format = iota
	FormatCSV
)

// SheetName nombre de la hoja que se escribe en los libros exportados.
const SheetName = "Sheet1"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FormatFromName elige el formato por la extensión: ".csv" es CSV, el resto xlsx.
func FormatFromName(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// ParseFormat interpreta "csv" o "xlsx"; vacío es xlsx.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, true
	case "csv":
		return FormatCSV, true
	}
	return FormatXLSX, false
}

func (f Format) Ext() string {
	if f == FormatCSV {
		return ".csv"
	}
	return ".xlsx"
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return xlsxContentType
}

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
)

// maxInputBytes tamaño máximo aceptado para una planilla.
const maxInputBytes = 10 << 20

// ReadRows devuelve las filas de datos (sin encabezado), con campos recortados.
// Las filas completamente vacías se descartan. Un archivo que empieza con la
// firma zip se lee como libro xlsx; cualquier otro, como CSV.
func ReadRows(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxInputBytes))
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer: %w", err)
	}
	var records [][]string
	if bytes.HasPrefix(raw, zipMagic) {
		records, err = readXLSX(raw)
	} else {
		records, err = readCSV(raw)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		empty := true
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
			if rec[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

// readXLSX lee la primera hoja con los valores tal como se muestran en Excel.
func readXLSX(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: hoja %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

func readCSV(raw []byte) ([][]string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyFile
	}
	if !utf8.Valid(raw) {
		var err error
		raw, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("spreadsheet: decodificar Windows-1252: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = detectDelimiter(raw)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: formato CSV: %w", err)
	}
	return records, nil
}

// detectDelimiter usa ';' cuando la primera línea lo trae y no trae comas.
func detectDelimiter(raw []byte) rune {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.IndexByte(first, ';') >= 0 && bytes.IndexByte(first, ',') < 0 {
		return ';'
	}
	return ','
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// amount importe ya formateado. En CSV se escribe tal cual; en xlsx va como número.
type amount string

// writeAll escribe encabezado + filas en el formato pedido.
func writeAll(w io.Writer, format Format, header []string, rows [][]any) error {
	if format == FormatCSV {
		return writeCSV(w, header, rows)
	}
	return writeXLSX(w, header, rows)
}

func writeXLSX(w io.Writer, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &head); err != nil {
		return fmt.Errorf("spreadsheet: encabezado: %w", err)
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = xlsxValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("spreadsheet: fila %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}

func xlsxValue(v any) any {
	a, ok := v.(amount)
	if !ok {
		return v
	}
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return string(a)
	}
	return d.InexactFloat64()
}

// writeCSV escribe BOM + encabezado + filas.
func writeCSV(w io.Writer, header []string, rows [][]any) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = csvValue(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case amount:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
