package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1200.00", -120000, true},
		{"+3.5", 350, true},
		{".5", 50, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("ParseMoney(%q) = %d (err=%v), want %d", tc.in, got.Cents, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("ParseMoney(%q) expected error", tc.in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{120000, "1200.00"},
		{-450, "-4.50"},
		{105, "1.05"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyAbsNeg(t *testing.T) {
	m := Money{Cents: -250}
	if m.Abs().Cents != 250 {
		t.Fatalf("Abs() = %d, want 250", m.Abs().Cents)
	}
	if m.Neg().Cents != 250 {
		t.Fatalf("Neg() = %d, want 250", m.Neg().Cents)
	}
	if (Money{Cents: 250}).Abs().Cents != 250 {
		t.Fatal("Abs() of positive should be unchanged")
	}
}
