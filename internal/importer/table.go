// Package importer parses bank-statement files into draft transactions.
// Spreadsheet and delimited-text sources are both normalized into the
// same tabular shape before row processing; deduplication is the
// store's responsibility, not the importer's.
package importer

import "strings"

// Statement column names as exported by the bank.
const (
	ColDate        = "Utført dato"
	ColDescription = "Beskrivelse"
	ColReference   = "Melding/KID/Fakt.nr"
	ColCredit      = "Beløp inn"
	ColDebit       = "Beløp ut"
)

// Table is the normalized tabular shape shared by all statement sources.
type Table struct {
	Header []string
	Rows   [][]string
}

// columnIndex returns the position of name in the header, or -1.
func (t Table) columnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// cell returns the trimmed value at column idx of row, tolerating ragged
// rows. Spreadsheet readers drop trailing empty cells.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
