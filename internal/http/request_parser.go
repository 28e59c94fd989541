package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"splittab/internal/core"
	"splittab/internal/i18n"
)

// sanitizeInput strips control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// displayCurrency reads the requested display currency, falling back to
// the configured primary.
func (s *Server) displayCurrency(r *http.Request) core.Currency {
	if c := core.Currency(strings.TrimSpace(r.URL.Query().Get("currency"))); c.Valid() {
		return c
	}
	return s.primary
}

// catalog resolves the requested language catalog, falling back to the
// configured default.
func (s *Server) catalog(r *http.Request) *i18n.Catalog {
	lang := strings.TrimSpace(r.URL.Query().Get("lang"))
	if lang == "" {
		lang = s.defaultLang
	}
	return i18n.Lookup(lang)
}

// formCurrency reads the expense currency from the form, falling back to
// the configured default entry currency.
func (s *Server) formCurrency(r *http.Request) core.Currency {
	if c := core.Currency(strings.TrimSpace(r.Form.Get("currency"))); c.Valid() {
		return c
	}
	return s.defaultCurr
}

// formMonth reads a "YYYY-MM" date field; empty or malformed means no date.
func formMonth(r *http.Request) core.Month {
	m, err := core.ParseMonth(strings.TrimSpace(r.Form.Get("date")))
	if err != nil {
		return core.Month{}
	}
	return m
}

// expenseID extracts the {id} route parameter.
func expenseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// categoryKey extracts the {key} route parameter.
func categoryKey(r *http.Request) (string, bool) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	return key, key != ""
}

// parseFormOrFail parses the request form, writing a 400 fragment on
// failure. Returns false when the response has been written.
func parseFormOrFail(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return false
	}
	return true
}
