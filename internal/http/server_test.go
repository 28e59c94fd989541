package http

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"splittab/internal/config"
	"splittab/internal/core"
	"splittab/internal/ledger"
	"splittab/internal/log"
)

func mustMonth(t *testing.T, s string) core.Month {
	t.Helper()
	m, err := core.ParseMonth(s)
	if err != nil {
		t.Fatalf("ParseMonth(%q): %v", s, err)
	}
	return m
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:               "0",
		PrimaryCurrency:    "EUR",
		DefaultCurrency:    "EUR",
		Language:           "en",
		RateLimitPerMinute: 1000,
		CacheSize:          16,
		CacheTTL:           time.Minute,
	}
	logger := log.New(log.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	s := NewServer(cfg, logger, ledger.New(ledger.DefaultCategories()))
	t.Cleanup(func() { s.limiter.Stop(); close(s.stopCleanup) })
	return s
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestIndexRenders(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "expense-list") {
		t.Error("index missing expense-list partial")
	}
	if !strings.Contains(body, "Groceries") {
		t.Error("index missing seeded category name")
	}
}

func TestCreateExpenses(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, "/expenses", url.Values{
		"description": {"lunch;taxi"},
		"amount":      {"10,98;15.79"},
		"currency":    {"EUR"},
		"category":    {"eating"},
		"date":        {"2026-08"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "lunch") {
		t.Error("refreshed list missing new expense")
	}
	if trigger := rec.Header().Get("HX-Trigger"); !strings.Contains(trigger, "form:reset") {
		t.Errorf("HX-Trigger = %q, want form:reset", trigger)
	}
	if n := len(s.led.Snapshot().Expenses); n != 2 {
		t.Errorf("expenses = %d, want 2", n)
	}
}

func TestCreateExpensesCountMismatch(t *testing.T) {
	s := newTestServer(t)
	rec := postForm(s, "/expenses", url.Values{
		"description": {"a;b;c"},
		"amount":      {"5;7"},
		"category":    {"eating"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="error"`) {
		t.Error("expected inline error fragment")
	}
	if n := len(s.led.Snapshot().Expenses); n != 0 {
		t.Errorf("expenses = %d, want 0 after rejected batch", n)
	}
}

func TestDeleteExpenseUnknownID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodDelete, "/expenses/999", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestEditExpense(t *testing.T) {
	s := newTestServer(t)
	created, err := s.led.AddExpenses("12", "coffee", "EUR", "eating", mustMonth(t, "2026-08"))
	if err != nil {
		t.Fatal(err)
	}
	id := created[0].ID

	req := httptest.NewRequest(http.MethodPut, "/expenses/"+itoa(id), strings.NewReader(url.Values{
		"description": {"espresso"},
		"amount":      {"2,50"},
		"currency":    {"EUR"},
		"category":    {"eating"},
		"date":        {"2026-08"},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got, _ := s.led.Expense(id)
	if got.Description != "espresso" || got.Amount != 2.50 {
		t.Errorf("expense after edit = %+v", got)
	}
}

func TestDeleteCategoryModes(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.led.AddExpenses("5", "bread", "EUR", "groceries", mustMonth(t, "2026-08")); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/categories/groceries?mode=category", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if _, found := s.led.Category("groceries"); found {
		t.Error("category still present after mode=category delete")
	}
	if n := len(s.led.Snapshot().Expenses); n != 1 {
		t.Errorf("expenses = %d, want 1 (kept as orphan)", n)
	}
	// The orphaned key renders by its raw key.
	if !strings.Contains(rec.Body.String(), "groceries") {
		t.Error("orphan section missing from refreshed list")
	}
}

func TestDeleteCategoryUnknownKey(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodDelete, "/categories/nope?mode=cascade", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestBatchEditViaSelection(t *testing.T) {
	s := newTestServer(t)
	created, err := s.led.AddExpenses("5;7", "a;b", "EUR", "eating", mustMonth(t, "2026-08"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range created {
		if rec := postForm(s, "/expenses/"+itoa(e.ID)+"/select", nil); rec.Code != http.StatusOK {
			t.Fatalf("select: status = %d", rec.Code)
		}
	}

	rec := postForm(s, "/batch-edit", url.Values{
		"description": {"shared dinner"},
		"category":    {"other"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	for _, e := range s.led.Snapshot().Expenses {
		if e.Description != "shared dinner" || e.Category != "other" {
			t.Errorf("expense not batch-edited: %+v", e)
		}
	}
	if s.led.SelectedCount() != 0 {
		t.Error("selection not cleared after batch edit")
	}
}

func TestExportHeaders(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.led.AddExpenses("10", "lunch", "EUR", "eating", mustMonth(t, "2026-08")); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "Expense_Tracker_August_2026.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "ID,") {
		t.Errorf("body does not start with header row: %q", rec.Body.String()[:20])
	}
}

func TestImportReplacesLedger(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.led.AddExpenses("99", "stale", "EUR", "eating", mustMonth(t, "2026-01")); err != nil {
		t.Fatal(err)
	}

	csv := strings.Join([]string{
		"ID,Description,Date,Amount,Currency,Original Amount,Category",
		"",
		"CATEGORY: Groceries,,,,,,",
		"",
		"1,bread,2026-08,2.50,EUR,,Groceries",
		"",
		`,CATEGORY TOTAL:,,"=SUM(D5:D5)",EUR,,`,
	}, "\n")

	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "import.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, csv); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %q", rec.Code, rec.Body.String())
	}
	snap := s.led.Snapshot()
	if len(snap.Expenses) != 1 || snap.Expenses[0].Description != "bread" {
		t.Errorf("ledger after import = %+v", snap.Expenses)
	}
}

func TestRateLimitOnMutations(t *testing.T) {
	cfg := &config.Config{
		Port:               "0",
		PrimaryCurrency:    "EUR",
		DefaultCurrency:    "EUR",
		Language:           "en",
		RateLimitPerMinute: 2,
		CacheSize:          16,
		CacheTTL:           time.Minute,
	}
	logger := log.New(log.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	s := NewServer(cfg, logger, ledger.New(ledger.DefaultCategories()))
	t.Cleanup(func() { s.limiter.Stop(); close(s.stopCleanup) })

	var last int
	for i := 0; i < 3; i++ {
		rec := postForm(s, "/expenses", url.Values{"amount": {"1"}, "category": {"other"}})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third mutation status = %d, want 429", last)
	}

	// Reads stay unthrottled.
	req := httptest.NewRequest(http.MethodGet, "/ui/expense-list", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("read status = %d, want 200", rec.Code)
	}
}
