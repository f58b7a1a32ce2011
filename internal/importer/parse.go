package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hakdo/pengesjekk/internal/core"
)

var (
	ErrMissingDate = errors.New("missing or unparseable date")

	// ErrNoAmount and ErrBothAmounts flag rows violating the
	// credit/debit mutual exclusivity. Such rows are never inserted with
	// a defaulted amount; they are skipped and reported.
	ErrNoAmount    = errors.New("neither credit nor debit populated")
	ErrBothAmounts = errors.New("both credit and debit populated")
)

// RowError is a recoverable per-row import failure. One bad row never
// aborts the batch.
type RowError struct {
	Row int // 1-based data row number, excluding the header
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// ParseTable converts statement rows into draft transactions. Rows that
// cannot be parsed are returned as RowErrors alongside the drafts that
// could. A missing required column is a fatal error, not a row skip.
func ParseTable(t Table) ([]core.Draft, []RowError, error) {
	dateIdx := t.columnIndex(ColDate)
	descIdx := t.columnIndex(ColDescription)
	creditIdx := t.columnIndex(ColCredit)
	debitIdx := t.columnIndex(ColDebit)
	refIdx := t.columnIndex(ColReference) // optional

	for _, col := range []struct {
		name string
		idx  int
	}{
		{ColDate, dateIdx},
		{ColDescription, descIdx},
		{ColCredit, creditIdx},
		{ColDebit, debitIdx},
	} {
		if col.idx < 0 {
			return nil, nil, fmt.Errorf("statement is missing column %q", col.name)
		}
	}

	var (
		drafts  []core.Draft
		skipped []RowError
	)
	for i, row := range t.Rows {
		draft, err := parseRow(row, dateIdx, descIdx, refIdx, creditIdx, debitIdx)
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Err: err})
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, skipped, nil
}

func parseRow(row []string, dateIdx, descIdx, refIdx, creditIdx, debitIdx int) (core.Draft, error) {
	rawDate := cell(row, dateIdx)
	if rawDate == "" {
		return core.Draft{}, ErrMissingDate
	}
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Draft{}, fmt.Errorf("%w: %q", ErrMissingDate, rawDate)
	}

	description := strings.TrimSpace(cell(row, descIdx) + " " + cell(row, refIdx))

	credit := cell(row, creditIdx)
	debit := cell(row, debitIdx)
	switch {
	case credit != "" && debit != "":
		return core.Draft{}, ErrBothAmounts
	case credit == "" && debit == "":
		return core.Draft{}, ErrNoAmount
	}

	raw := credit
	direction := core.Income
	if debit != "" {
		raw = debit
		direction = core.Expense
	}
	amount, err := core.ParseMoney(raw)
	if err != nil {
		return core.Draft{}, fmt.Errorf("amount %q: %w", raw, err)
	}

	draft := core.Draft{
		Date:        date,
		Description: description,
		Amount:      amount.Abs(),
		Direction:   direction,
	}
	if err := draft.Validate(); err != nil {
		return core.Draft{}, err
	}
	return draft, nil
}
