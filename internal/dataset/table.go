// Package dataset loads the flat reference tables (fighter statistics and
// nicknames) into immutable in-memory structures at startup.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Table is a column-addressable in-memory view of one delimited text file.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// ReadCSV loads path into a Table. The first record is the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are padded below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s is empty", path)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	return &Table{cols: header, index: index, rows: records[1:]}, nil
}

// Columns returns the header in file order.
func (t *Table) Columns() []string { return t.cols }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the table carries the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Get returns the cell at (row, col), or "" when the column is unknown or
// the row is too short.
func (t *Table) Get(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.rows) || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}
