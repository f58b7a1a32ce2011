package importer

import (
	"strings"
	"testing"

	"github.com/hakdo/pengesjekk/internal/core"
)

func TestReadCSVNormalizes(t *testing.T) {
	src := "Dato;Beskrivelse;Inn;Ut\n" +
		"05.01.2024;Husleie;;1200,00\n" +
		"2024-01-25;Arbeidsgiver AS;42000,50;\n"

	table, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	for _, col := range []string{ColDate, ColDescription, ColCredit, ColDebit, ColReference} {
		if table.columnIndex(col) < 0 {
			t.Fatalf("normalized table is missing column %q (header %v)", col, table.Header)
		}
	}

	// Decimal commas in the amount columns become decimal points.
	if got := table.Rows[0][table.columnIndex(ColDebit)]; got != "1200.00" {
		t.Fatalf("debit cell = %q, want 1200.00", got)
	}
	if got := table.Rows[1][table.columnIndex(ColCredit)]; got != "42000.50" {
		t.Fatalf("credit cell = %q, want 42000.50", got)
	}

	// The added reference column is empty on every row.
	refIdx := table.columnIndex(ColReference)
	for i, row := range table.Rows {
		if row[refIdx] != "" {
			t.Fatalf("row %d reference = %q, want empty", i, row[refIdx])
		}
	}
}

func TestReadCSVThenParse(t *testing.T) {
	src := "Dato;Beskrivelse;Inn;Ut\n" +
		"05.01.2024;Husleie;;1200,00\n"

	table, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	drafts, skipped, err := ParseTable(table)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("skipped=%v err=%v", skipped, err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d drafts, want 1", len(drafts))
	}
	d := drafts[0]
	if d.Direction != core.Expense || d.Amount.Cents != 120000 || d.Date.ISO() != "2024-01-05" {
		t.Fatalf("draft = %+v", d)
	}
}

func TestReadCSVKeepsExistingReference(t *testing.T) {
	src := "Dato;Beskrivelse;Melding/KID/Fakt.nr;Inn;Ut\n" +
		"05.01.2024;Husleie;KID 1234;;1200,00\n"

	table, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(table.Header) != 5 {
		t.Fatalf("header grew to %v, reference column should not be duplicated", table.Header)
	}
	drafts, _, err := ParseTable(table)
	if err != nil || len(drafts) != 1 {
		t.Fatalf("drafts=%v err=%v", drafts, err)
	}
	if drafts[0].Description != "Husleie KID 1234" {
		t.Fatalf("description = %q, want reference appended", drafts[0].Description)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty csv")
	}
}
