package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"splittab/internal/core"
	"splittab/internal/i18n"
	"splittab/internal/log"
)

// expenseRow is one rendered ledger line.
type expenseRow struct {
	ID          int64
	Description string
	Date        string
	Amount      string // original amount, formatted with its currency
	RawAmount   string // bare number, feeds the inline edit form
	Converted   string // amount in the display currency
	Currency    core.Currency
	Selected    bool
	Editing     bool
}

// categorySection groups the rows of one category with its subtotal.
// Orphaned keys (category deleted, expenses kept) render as a section
// named by the raw key.
type categorySection struct {
	Key         string
	Name        string
	Icon        string
	Total       string
	AllSelected bool
	Rows        []expenseRow
	Orphan      bool
}

// listView is the data for the expense-list partial.
type listView struct {
	Sections      []categorySection
	GrandTotal    string
	SelectedCount int
	Currency      core.Currency
	Lang          string
}

// pageView is the data for the full index page.
type pageView struct {
	List       listView
	Categories []categoryOption
	Currencies []core.Currency
	Languages  []string
	Icons      []string
	Month      string
	DefaultCur core.Currency
}

type categoryOption struct {
	Key  string
	Name string
	Icon string
}

func (s *Server) buildListView(display core.Currency, cat *i18n.Catalog) listView {
	snap := s.led.Snapshot()

	byCategory := make(map[string][]core.Expense)
	var orphanOrder []string
	known := make(map[string]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		known[c.Key] = true
	}
	for _, e := range snap.Expenses {
		if _, seen := byCategory[e.Category]; !seen && !known[e.Category] {
			orphanOrder = append(orphanOrder, e.Category)
		}
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	editing := s.led.Editing()
	view := listView{
		GrandTotal:    core.FormatAmount(s.led.GrandTotal(display), display),
		SelectedCount: s.led.SelectedCount(),
		Currency:      display,
		Lang:          cat.Lang,
	}

	appendSection := func(key, name, icon string, orphan bool) {
		expenses := byCategory[key]
		section := categorySection{
			Key:    key,
			Name:   name,
			Icon:   icon,
			Total:  core.FormatAmount(s.led.CategoryTotal(key, display), display),
			Orphan: orphan,
		}
		allSelected := len(expenses) > 0
		for _, e := range expenses {
			selected := s.led.IsSelected(e.ID)
			if !selected {
				allSelected = false
			}
			section.Rows = append(section.Rows, expenseRow{
				ID:          e.ID,
				Description: e.Description,
				Date:        e.Date.String(),
				Amount:      core.FormatAmount(e.Amount, e.Currency),
				RawAmount:   core.FormatAmountCSV(e.Amount, e.Currency),
				Converted:   core.FormatAmount(core.Convert(e.Amount, e.Currency, display), display),
				Currency:    e.Currency,
				Selected:    selected,
				Editing:     e.ID == editing,
			})
		}
		section.AllSelected = allSelected
		view.Sections = append(view.Sections, section)
	}

	for _, c := range snap.Categories {
		appendSection(c.Key, cat.CategoryName(c.Key, c.Name), c.Icon, false)
	}
	for _, key := range orphanOrder {
		appendSection(key, key, core.DefaultIcon, true)
	}

	return view
}

// renderExpenseList renders the list partial, serving from the cache when
// the ledger revision has not moved.
func (s *Server) renderExpenseList(display core.Currency, cat *i18n.Catalog) (string, error) {
	key := fmt.Sprintf("%d|%s|%s", s.led.Revision(), display, cat.Lang)
	if html, ok := s.partials.Get(key); ok {
		return html, nil
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "expense-list.html", s.buildListView(display, cat)); err != nil {
		return "", err
	}
	html := buf.String()
	s.partials.Set(key, html)
	return html, nil
}

// writeExpenseList is the common tail of every mutating handler: the
// refreshed partial is the response body.
func (s *Server) writeExpenseList(w http.ResponseWriter, r *http.Request, display core.Currency, cat *i18n.Catalog) {
	s.writeListWith(w, r, display, cat, NewResponse())
}

// writeListWith renders the list partial into an already-populated
// response builder, so handlers can attach HX-Trigger events.
func (s *Server) writeListWith(w http.ResponseWriter, r *http.Request, display core.Currency, cat *i18n.Catalog, rb *ResponseBuilder) {
	html, err := s.renderExpenseList(display, cat)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List render failed",
			log.FieldError, err, log.FieldOperation, log.OpRender)
		InternalServerError("Could not render the expense list").Write(w)
		return
	}
	rb.BodyHTML(html).Write(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	display := s.displayCurrency(r)
	cat := s.catalog(r)
	snap := s.led.Snapshot()

	opts := make([]categoryOption, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		opts = append(opts, categoryOption{
			Key:  c.Key,
			Name: cat.CategoryName(c.Key, c.Name),
			Icon: c.Icon,
		})
	}

	now := time.Now()
	data := pageView{
		List:       s.buildListView(display, cat),
		Categories: opts,
		Currencies: core.Currencies(),
		Languages:  i18n.Languages(),
		Icons:      core.IconPalette,
		Month:      core.Month{Year: now.Year(), Month: int(now.Month())}.String(),
		DefaultCur: s.defaultCurr,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err, log.FieldOperation, log.OpRender)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	s.writeExpenseList(w, r, s.displayCurrency(r), s.catalog(r))
}
