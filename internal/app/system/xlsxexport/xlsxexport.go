// internal/app/system/xlsxexport/xlsxexport.go
package xlsxexport

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column is one exported column. Value overrides the plain Path lookup
// when set.
type Column struct {
	Header string
	Path   string
	Width  float64
	Value  func(rec filterset.Record) any
}

func (c Column) cell(rec filterset.Record) any {
	if c.Value != nil {
		return c.Value(rec)
	}
	v, ok := filterset.Lookup(rec, c.Path)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string, bool, float64:
		return t
	case map[string]any, []any:
		return ""
	}
	return filterset.Str(rec, c.Path)
}

// Write streams records as a single-sheet workbook with a bold header row.
func Write(w io.Writer, sheet string, cols []Column, records []filterset.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet = sheetName(sheet)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	// column widths must precede the first row
	for i, c := range cols {
		width := c.Width
		if width <= 0 {
			width = 18
		}
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = excelize.Cell{StyleID: bold, Value: c.Header}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("header row: %w", err)
	}

	for r, rec := range records {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = c.cell(rec)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("row %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Serve writes the workbook as a download named filename.
func Serve(w http.ResponseWriter, filename, sheet string, cols []Column, records []filterset.Record) error {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-store")
	return Write(w, sheet, cols, records)
}

// sheetName fits Excel's rules: at most 31 characters, none of []:*?/\.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '-'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		return "Export"
	}
	for utf8.RuneCountInString(s) > 31 {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}
