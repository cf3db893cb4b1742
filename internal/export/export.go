// Package export encodes an extracted grid as a downloadable XLSX workbook
// using excelize. The grid goes verbatim into a single sheet, optionally
// preceded by a title row and one blank separator row, with each column
// auto-sized to its widest cell.
package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"rptconv/internal/extract"
)

const (
	// sourceExt is the report file extension stripped when deriving the
	// output file name.
	sourceExt = ".rpt"
	outputExt = ".xlsx"

	minColWidth        = 8
	defaultMaxColWidth = 60

	// colPadding widens each auto-sized column a little past the raw rune
	// count so cell content doesn't touch the column border.
	colPadding = 2
)

// Options controls workbook rendering.
type Options struct {
	// Title, when non-empty, is written above the grid followed by one
	// blank separator row.
	Title string

	// MaxColWidth caps auto-sized column widths. Zero means the default.
	MaxColWidth float64
}

// Workbook renders grid into an XLSX byte stream.
func Workbook(grid extract.Grid, opts Options) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	startRow := 1
	if opts.Title != "" {
		if err := f.SetCellValue(sheet, "A1", opts.Title); err != nil {
			return nil, fmt.Errorf("write title: %w", err)
		}
		startRow = 3 // title row + blank separator
	}

	// widths track grid cells only; the title overflows its row freely
	// instead of stretching column A.
	var widths []float64

	for i, row := range grid {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
			w := float64(utf8.RuneCountInString(cell))
			for len(widths) <= j {
				widths = append(widths, 0)
			}
			if w > widths[j] {
				widths[j] = w
			}
		}
		addr, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxColWidth
	}
	for j, w := range widths {
		width := w + colPadding
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxWidth {
			width = maxWidth
		}
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", j, err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
	}

	return f.WriteToBuffer()
}

// OutputName derives the workbook file name from the uploaded report name:
// the source extension is stripped case-insensitively and the spreadsheet
// extension appended. Path components are discarded.
func OutputName(input string) string {
	base := filepath.Base(strings.TrimSpace(input))
	if ext := filepath.Ext(base); strings.EqualFold(ext, sourceExt) {
		base = base[:len(base)-len(ext)]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "report"
	}
	return base + outputExt
}
