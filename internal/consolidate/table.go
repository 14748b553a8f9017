// Package consolidate flattens per-document records into a single table whose
// columns follow the field specification order.
package consolidate

import (
	"github.com/joseph-ayodele/survey-tabulator/internal/extract"
	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
)

type Table struct {
	Columns []string
	Rows    [][]string
}

// Build assembles a table from records. Columns are exactly the field list in
// its declared order. A value missing from a record becomes an empty cell,
// and record keys outside the field list are ignored, so artifacts written
// against an older field specification still consolidate cleanly.
func Build(records []extract.Record, list *fields.List) *Table {
	columns := list.Names()
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}
	return &Table{Columns: columns, Rows: rows}
}
