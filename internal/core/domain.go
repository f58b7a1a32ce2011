package core

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	Income  Direction = "Income"
	Expense Direction = "Expense"

	// DirectionAll is a filter sentinel, never persisted.
	DirectionAll Direction = "All"
)

// Recognized income categories. Expense categories are open free text.
const (
	CategorySalary      Category = "Lønn"
	CategoryOtherIncome Category = "Annen inntekt"
)

type (
	Direction string

	Category string

	// Date is a calendar date without a time component.
	Date struct {
		time.Time
	}

	Account struct {
		ID     int64
		Name   string
		Number string
		Notes  string
	}

	// Transaction is a persisted ledger entry. Amount is a non-negative
	// magnitude; the sign lives in Direction.
	Transaction struct {
		ID          int64
		AccountID   int64
		Date        Date
		Description string
		Amount      Money
		Direction   Direction
		Category    Category
		Fingerprint string
	}

	// Draft is an imported transaction that has not been persisted yet.
	// Category is always empty; categorization is a later step.
	Draft struct {
		Date        Date
		Description string
		Amount      Money
		Direction   Direction
	}

	// BudgetLine is one row of a named budget. Generated budgets put
	// income sums in Planned and negated expense sums in Actual so that
	// the balance is the plain sum of all signed values.
	BudgetLine struct {
		Category string
		Planned  Money
		Actual   Money
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrEmptyDescription = errors.New("empty description")
)

// DisplayDateFormat is the user-facing date format.
const DisplayDateFormat = "02.01.2006"

const isoDateFormat = "2006-01-02"

// ParseDate parses a statement date, trying ISO YYYY-MM-DD first and
// falling back to DD.MM.YYYY.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	if t, err := time.Parse(isoDateFormat, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(DisplayDateFormat, s); err == nil {
		return Date{Time: t}, nil
	}
	return Date{}, ErrInvalidDate
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO returns the date as YYYY-MM-DD, the canonical storage form.
func (d Date) ISO() string {
	return d.Format(isoDateFormat)
}

// String returns the date as DD.MM.YYYY for display.
func (d Date) String() string {
	return d.Format(DisplayDateFormat)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (dir Direction) Validate() error {
	switch dir {
	case Income, Expense:
		return nil
	}
	return ErrInvalidDirection
}

// IsEmpty reports whether the category is still pending categorization.
func (c Category) IsEmpty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// CoerceIncome maps a suggested label onto the closed set of income
// categories. Anything outside the recognized labels becomes
// CategoryOtherIncome.
func CoerceIncome(label string) Category {
	c := Category(strings.TrimSpace(label))
	switch c {
	case CategorySalary, CategoryOtherIncome:
		return c
	}
	return CategoryOtherIncome
}

func (t Draft) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	return t.Direction.Validate()
}

// Fingerprint computes the deduplication hash over (date, description,
// amount). The date is canonicalized to ISO and the amount to cents, so
// differently formatted spellings of the same row collapse to one value.
func Fingerprint(date Date, description string, amount Money) string {
	sum := sha256.Sum256([]byte(date.ISO() + "|" + description + "|" + strconv.FormatInt(amount.Cents, 10)))
	return hex.EncodeToString(sum[:])
}

// Fingerprint returns the draft's deduplication hash.
func (t Draft) Fingerprint() string {
	return Fingerprint(t.Date, t.Description, t.Amount)
}
