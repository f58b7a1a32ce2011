package importer

import (
	"errors"
	"testing"

	"github.com/hakdo/pengesjekk/internal/core"
)

func statementTable(rows [][]string) Table {
	return Table{
		Header: []string{ColDate, ColDescription, ColReference, ColCredit, ColDebit},
		Rows:   rows,
	}
}

func TestParseTable(t *testing.T) {
	table := statementTable([][]string{
		{"2024-01-05", "Rent", "", "", "1200.00"},
		{"25.01.2024", "Employer AS", "Salary jan", "42000.00", ""},
		{"2024-02-10", "KIWI 405", "", "", "854.20"},
	})

	drafts, skipped, err := ParseTable(table)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped rows: %v", skipped)
	}
	if len(drafts) != 3 {
		t.Fatalf("got %d drafts, want 3", len(drafts))
	}

	if drafts[0].Direction != core.Expense || drafts[0].Amount.Cents != 120000 {
		t.Fatalf("draft 0 = %+v, want expense 120000", drafts[0])
	}
	if drafts[0].Date.ISO() != "2024-01-05" {
		t.Fatalf("draft 0 date = %s", drafts[0].Date.ISO())
	}

	if drafts[1].Direction != core.Income || drafts[1].Amount.Cents != 4200000 {
		t.Fatalf("draft 1 = %+v, want income 4200000", drafts[1])
	}
	if drafts[1].Date.ISO() != "2024-01-25" {
		t.Fatalf("draft 1 date = %s, want DD.MM.YYYY fallback to parse", drafts[1].Date.ISO())
	}
	if drafts[1].Description != "Employer AS Salary jan" {
		t.Fatalf("draft 1 description = %q, want reference appended", drafts[1].Description)
	}
}

func TestParseTableSkipsBadRows(t *testing.T) {
	table := statementTable([][]string{
		{"", "No date", "", "100.00", ""},
		{"garbage", "Bad date", "", "100.00", ""},
		{"2024-01-05", "Both columns", "", "100.00", "200.00"},
		{"2024-01-06", "Neither column", "", "", ""},
		{"2024-01-07", "Bad amount", "", "", "12x.00"},
		{"2024-01-08", "Good row", "", "", "50.00"},
	})

	drafts, skipped, err := ParseTable(table)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Description != "Good row" {
		t.Fatalf("got drafts %+v, want only the good row", drafts)
	}
	if len(skipped) != 5 {
		t.Fatalf("got %d skipped rows, want 5", len(skipped))
	}

	wantErrs := []error{ErrMissingDate, ErrMissingDate, ErrBothAmounts, ErrNoAmount, core.ErrInvalidAmount}
	for i, want := range wantErrs {
		if !errors.Is(skipped[i], want) {
			t.Fatalf("skipped[%d] = %v, want %v", i, skipped[i], want)
		}
	}
	if skipped[2].Row != 3 {
		t.Fatalf("skipped[2].Row = %d, want 1-based row 3", skipped[2].Row)
	}
}

func TestParseTableMissingColumnIsFatal(t *testing.T) {
	table := Table{
		Header: []string{ColDate, ColDescription}, // no amount columns
		Rows:   [][]string{{"2024-01-05", "Rent"}},
	}
	if _, _, err := ParseTable(table); err == nil {
		t.Fatal("expected fatal error for missing required column")
	}
}

func TestParseTableOptionalReference(t *testing.T) {
	table := Table{
		Header: []string{ColDate, ColDescription, ColCredit, ColDebit},
		Rows:   [][]string{{"2024-01-05", "Rent", "", "1200.00"}},
	}
	drafts, skipped, err := ParseTable(table)
	if err != nil || len(skipped) != 0 || len(drafts) != 1 {
		t.Fatalf("drafts=%v skipped=%v err=%v", drafts, skipped, err)
	}
	if drafts[0].Description != "Rent" {
		t.Fatalf("description = %q, want %q", drafts[0].Description, "Rent")
	}
}

func TestParseTableNegativeDebitMagnitude(t *testing.T) {
	table := statementTable([][]string{
		{"2024-01-05", "Card purchase", "", "", "-854.20"},
	})
	drafts, skipped, err := ParseTable(table)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("skipped=%v err=%v", skipped, err)
	}
	if drafts[0].Amount.Cents != 85420 || drafts[0].Direction != core.Expense {
		t.Fatalf("draft = %+v, want absolute magnitude 85420 expense", drafts[0])
	}
}

func TestParseTableRaggedRows(t *testing.T) {
	// Spreadsheet readers drop trailing empty cells.
	table := statementTable([][]string{
		{"2024-01-05", "Rent", "", "1200.00"},
	})
	drafts, skipped, err := ParseTable(table)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("skipped=%v err=%v", skipped, err)
	}
	if drafts[0].Direction != core.Income || drafts[0].Amount.Cents != 120000 {
		t.Fatalf("draft = %+v, want income 120000 from short row", drafts[0])
	}
}
