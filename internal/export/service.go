package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/survey-tabulator/internal/consolidate"
)

const sheetName = "Survey Data"

// Service produces XLSX bytes for consolidated survey tables.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportSurveysXLSX returns an XLSX workbook (as bytes): one header row with
// the field names, then one row per record, columns in field specification
// order. Cell values are written verbatim.
func (s *Service) ExportSurveysXLSX(table *consolidate.Table) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for r, row := range table.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	// Widen columns so long field names stay readable
	for i, h := range table.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		width := float64(len(h) + 4)
		if width < 12 {
			width = 12
		}
		if width > 48 {
			width = 48
		}
		_ = f.SetColWidth(sheetName, col, col, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(table.Rows),
		"columns", len(table.Columns),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
