package export

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/survey-tabulator/internal/consolidate"
)

func TestExportSurveysXLSX(t *testing.T) {
	table := &consolidate.Table{
		Columns: []string{"Employer Name", "Teamwork", "Comments"},
		Rows: [][]string{
			{"Acme", "8", "solid"},
			{"Globex", "5", "N/A"},
		},
	}

	data, err := NewService(nil).ExportSurveysXLSX(table)
	if err != nil {
		t.Fatalf("ExportSurveysXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", sheetName, err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (header + 2 records)", len(rows))
	}
	if !reflect.DeepEqual(rows[0], table.Columns) {
		t.Errorf("header = %v, want %v", rows[0], table.Columns)
	}
	if !reflect.DeepEqual(rows[1], table.Rows[0]) {
		t.Errorf("rows[1] = %v, want %v", rows[1], table.Rows[0])
	}
	if !reflect.DeepEqual(rows[2], table.Rows[1]) {
		t.Errorf("rows[2] = %v, want %v", rows[2], table.Rows[1])
	}
}

func TestExportSurveysXLSXHeaderOnly(t *testing.T) {
	table := &consolidate.Table{
		Columns: []string{"Employer Name", "Teamwork"},
	}

	data, err := NewService(nil).ExportSurveysXLSX(table)
	if err != nil {
		t.Fatalf("ExportSurveysXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", sheetName, err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want header row only", len(rows))
	}
}

func TestExportSurveysXLSXEmptyCells(t *testing.T) {
	table := &consolidate.Table{
		Columns: []string{"Employer Name", "Teamwork", "Comments"},
		Rows:    [][]string{{"Acme", "", ""}},
	}

	data, err := NewService(nil).ExportSurveysXLSX(table)
	if err != nil {
		t.Fatalf("ExportSurveysXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(sheetName, "B2")
	if err != nil {
		t.Fatalf("GetCellValue(B2) error = %v", err)
	}
	if got != "" {
		t.Errorf("B2 = %q, want empty cell", got)
	}
	got, err = f.GetCellValue(sheetName, "A2")
	if err != nil {
		t.Fatalf("GetCellValue(A2) error = %v", err)
	}
	if got != "Acme" {
		t.Errorf("A2 = %q, want Acme", got)
	}
}
