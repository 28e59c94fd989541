package core

import (
	"math"
	"reflect"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		nan bool
	}{
		{"10.98", 10.98, false},
		{"10,98", 10.98, false},
		{" 2.50 ", 2.5, false},
		{"-7", -7, false},
		{"abc", 0, true},
		{"", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		if tc.nan {
			if !math.IsNaN(got) {
				t.Fatalf("ParseAmount(%q) = %v, want NaN", tc.in, got)
			}
			continue
		}
		if got != tc.out {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestSplitEntries(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"10,98;15.79", []string{"10,98", "15.79"}},
		{"5+7+9", []string{"5", "7", "9"}},
		{" coffee ; tea + juice", []string{"coffee", "tea", "juice"}},
		{"; ; +", nil},
		{"", nil},
		{"single", []string{"single"}},
	}
	for _, tc := range cases {
		got := SplitEntries(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitEntries(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSlugKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Groceries", "groceries"},
		{"Eating in the restaurant", "eating_in_the_restaurant"},
		{"  Two   Words ", "two_words"},
		{"already_keyed", "already_keyed"},
	}
	for _, tc := range cases {
		if got := SlugKey(tc.in); got != tc.want {
			t.Fatalf("SlugKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMonthRoundTrip(t *testing.T) {
	m := Month{Year: 2026, Month: 8}
	if m.String() != "2026-08" {
		t.Fatalf("String = %q", m.String())
	}
	got, err := ParseMonth("2026-08")
	if err != nil || got != m {
		t.Fatalf("ParseMonth = %v, %v", got, err)
	}
	blank, err := ParseMonth("")
	if err != nil || !blank.IsZero() {
		t.Fatalf("blank month = %v, %v", blank, err)
	}
	if _, err := ParseMonth("2026-13"); err == nil {
		t.Fatalf("expected error for month 13")
	}
	if blank.String() != "" {
		t.Fatalf("zero month should render empty, got %q", blank.String())
	}
}
