package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvRenames maps the delimited-text export's column names onto the
// spreadsheet column names.
var csvRenames = map[string]string{
	"Dato": ColDate,
	"Inn":  ColCredit,
	"Ut":   ColDebit,
}

// ReadCSV reads a semicolon-delimited statement export and normalizes it
// into the spreadsheet column shape: columns are renamed, decimal commas
// in the amount columns become decimal points, and a missing reference
// column is added empty.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv is empty")
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if renamed, ok := csvRenames[name]; ok {
			name = renamed
		}
		header[i] = name
	}

	t := Table{Header: header, Rows: records[1:]}

	creditIdx := t.columnIndex(ColCredit)
	debitIdx := t.columnIndex(ColDebit)
	for _, row := range t.Rows {
		for _, idx := range []int{creditIdx, debitIdx} {
			if idx >= 0 && idx < len(row) {
				row[idx] = strings.ReplaceAll(row[idx], ",", ".")
			}
		}
	}

	if t.columnIndex(ColReference) < 0 {
		t.Header = append(t.Header, ColReference)
		for i, row := range t.Rows {
			t.Rows[i] = append(row, "")
		}
	}

	return t, nil
}
