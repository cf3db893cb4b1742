// Package convert orchestrates the report conversion pipeline: one shared
// engine call feeding either a truncated JSON preview or a full workbook
// export. Both the HTTP handlers and the batch CLI go through this service
// so the extraction logic has a single source of truth.
package convert

import (
	"bytes"
	"fmt"
	"log"

	"rptconv/internal/export"
	"rptconv/internal/extract"
)

// Service converts uploaded report bytes to grids and workbooks.
type Service struct {
	previewRows int
	exportOpts  export.Options
}

// Preview is the truncated view of an extraction result returned to the
// upload form before the user commits to a download.
type Preview struct {
	FileName  string     `json:"file_name"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

// Result is a rendered workbook ready for download.
type Result struct {
	FileName string
	Data     *bytes.Buffer
}

// NewService creates a Service. previewRows bounds how many grid rows a
// preview carries; the true total is always reported alongside.
func NewService(previewRows int, exportOpts export.Options) *Service {
	if previewRows <= 0 {
		previewRows = 50
	}
	return &Service{previewRows: previewRows, exportOpts: exportOpts}
}

// Preview extracts the grid and returns its leading rows plus the true row
// count. Extraction cannot fail: a report with no recoverable text previews
// as zero rows.
func (s *Service) Preview(name string, data []byte) Preview {
	grid := extract.Extract(data)
	rows := [][]string(grid)
	if len(rows) > s.previewRows {
		rows = rows[:s.previewRows]
	}
	log.Printf("[Convert] preview %q: %d rows extracted, %d returned", name, len(grid), len(rows))
	return Preview{FileName: name, Rows: rows, TotalRows: len(grid)}
}

// Convert extracts the full grid and renders it as an XLSX workbook named
// after the input file.
func (s *Service) Convert(name string, data []byte) (*Result, error) {
	grid := extract.Extract(data)
	buf, err := export.Workbook(grid, s.exportOpts)
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	log.Printf("[Convert] convert %q: %d rows", name, len(grid))
	return &Result{FileName: export.OutputName(name), Data: buf}, nil
}
