package core

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		iso string
		ok  bool
	}{
		{"2024-01-05", "2024-01-05", true},
		{"05.01.2024", "2024-01-05", true},
		{" 2024-12-31 ", "2024-12-31", true},
		{"31.12.2024", "2024-12-31", true},
		{"", "", false},
		{"2024/01/05", "", false},
		{"not a date", "", false},
		{"5.1.2024", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tc.in, err)
			}
			if got.ISO() != tc.iso {
				t.Fatalf("ParseDate(%q) = %s, want %s", tc.in, got.ISO(), tc.iso)
			}
		} else if err == nil {
			t.Fatalf("ParseDate(%q) expected error", tc.in)
		}
	}
}

func TestDateDisplayFormat(t *testing.T) {
	d := NewDate(2024, 1, 5)
	if got := d.String(); got != "05.01.2024" {
		t.Fatalf("display format = %q, want 05.01.2024", got)
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	a := Fingerprint(NewDate(2024, 1, 5), "Rent", Money{Cents: 120000})
	b := Fingerprint(NewDate(2024, 1, 5), "Rent", Money{Cents: 120000})
	if a != b {
		t.Fatalf("equal triples produced different fingerprints: %s vs %s", a, b)
	}

	diffs := []string{
		Fingerprint(NewDate(2024, 1, 6), "Rent", Money{Cents: 120000}),
		Fingerprint(NewDate(2024, 1, 5), "Rent ", Money{Cents: 120000}),
		Fingerprint(NewDate(2024, 1, 5), "Rent", Money{Cents: 120001}),
	}
	for i, d := range diffs {
		if d == a {
			t.Fatalf("case %d: differing triple produced identical fingerprint", i)
		}
	}
}

// The same row spelled with an ISO date and a DD.MM.YYYY date must
// collapse to one fingerprint after normalization.
func TestFingerprintCrossFormat(t *testing.T) {
	isoDate, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatal(err)
	}
	dottedDate, err := ParseDate("05.01.2024")
	if err != nil {
		t.Fatal(err)
	}
	amount, err := ParseMoney("1200.00")
	if err != nil {
		t.Fatal(err)
	}

	a := Draft{Date: isoDate, Description: "Rent", Amount: amount, Direction: Expense}
	b := Draft{Date: dottedDate, Description: "Rent", Amount: amount, Direction: Expense}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("cross-format fingerprints differ: %s vs %s", a.Fingerprint(), b.Fingerprint())
	}
}

func TestCoerceIncome(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"Lønn", CategorySalary},
		{"Annen inntekt", CategoryOtherIncome},
		{" Lønn ", CategorySalary},
		{"Dagligvarer", CategoryOtherIncome},
		{"", CategoryOtherIncome},
		{"lønn", CategoryOtherIncome}, // matching is case-sensitive
	}
	for _, tc := range cases {
		if got := CoerceIncome(tc.in); got != tc.want {
			t.Fatalf("CoerceIncome(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	valid := Draft{
		Date:        NewDate(2024, 3, 1),
		Description: "Coffee",
		Amount:      Money{Cents: 450},
		Direction:   Expense,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	cases := []struct {
		name  string
		draft Draft
	}{
		{"zero date", Draft{Description: "x", Amount: Money{Cents: 1}, Direction: Expense}},
		{"empty description", Draft{Date: NewDate(2024, 3, 1), Description: "  ", Amount: Money{Cents: 1}, Direction: Expense}},
		{"zero amount", Draft{Date: NewDate(2024, 3, 1), Description: "x", Direction: Expense}},
		{"negative amount", Draft{Date: NewDate(2024, 3, 1), Description: "x", Amount: Money{Cents: -5}, Direction: Expense}},
		{"bad direction", Draft{Date: NewDate(2024, 3, 1), Description: "x", Amount: Money{Cents: 1}, Direction: "Sideways"}},
	}
	for _, tc := range cases {
		if err := tc.draft.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
