package i18n

import "testing"

func TestLookupFallsBackToEnglish(t *testing.T) {
	if got := Lookup("de"); got.Lang != "en" {
		t.Fatalf("Lookup(de) = %s, want en", got.Lang)
	}
	if got := Lookup("vi"); got.Lang != "vi" {
		t.Fatalf("Lookup(vi) = %s", got.Lang)
	}
}

func TestCategoryName(t *testing.T) {
	en := Lookup("en")
	if got := en.CategoryName("eating", "whatever"); got != "Eating in the restaurant" {
		t.Fatalf("translated name = %q", got)
	}
	if got := en.CategoryName("custom_stuff", "Custom Stuff"); got != "Custom Stuff" {
		t.Fatalf("fallback name = %q", got)
	}
}

func TestMonthName(t *testing.T) {
	en := Lookup("en")
	if got := en.MonthName(1); got != "January" {
		t.Fatalf("MonthName(1) = %q", got)
	}
	if got := en.MonthName(0); got != "" {
		t.Fatalf("MonthName(0) = %q, want empty", got)
	}
	if got := en.MonthName(13); got != "" {
		t.Fatalf("MonthName(13) = %q, want empty", got)
	}
}
