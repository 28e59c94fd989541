// Package csvcodec serializes the ledger into a spreadsheet-ready CSV
// document and parses such documents back into ledger state.
//
// The format is self-describing and human-editable: expenses are grouped
// under "CATEGORY:" banner rows, each group is followed by a subtotal row
// whose Amount cell holds a live =SUM(...) formula over the group's row
// range, and the document ends with a grand-total formula over the
// subtotal cells. Formulas instead of precomputed sums let a spreadsheet
// recompute totals after manual edits.
package csvcodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"splittab/internal/core"
	"splittab/internal/i18n"
	"splittab/internal/ledger"
)

const (
	headerCell        = "ID"
	categoryPrefix    = "CATEGORY:"
	categoryTotalMark = "CATEGORY TOTAL:"
	grandTotalMark    = "GRAND TOTAL:"
	noDescription     = "No description"
)

var header = []string{"ID", "Description", "Date", "Amount", "Currency", "Original Amount", "Category"}

// Marshal renders the snapshot as CSV text. Amounts are converted into the
// primary currency for the Amount column; the Original Amount column keeps
// the entered value with its currency code. Category display names go
// through the catalog with fallback to the stored name, then the raw key.
func Marshal(snap ledger.Snapshot, primary core.Currency, cat *i18n.Catalog) string {
	byKey := make(map[string]core.Category, len(snap.Categories))
	for _, c := range snap.Categories {
		byKey[c.Key] = c
	}
	displayName := func(key string) string {
		stored := key
		if c, ok := byKey[key]; ok {
			stored = c.Name
		}
		return cat.CategoryName(key, stored)
	}

	var rows []string
	// The row counter tracks spreadsheet row addresses explicitly; formula
	// ranges must not be derived from slice positions.
	rowIndex := 1
	push := func(cells ...string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = escape(c)
		}
		rows = append(rows, strings.Join(escaped, ","))
		rowIndex++
	}
	blank := func() { push("", "", "", "", "", "", "") }

	push(header...)

	var subtotalRefs []string
	for _, c := range snap.Categories {
		var catExpenses []core.Expense
		for _, e := range snap.Expenses {
			if e.Category == c.Key {
				catExpenses = append(catExpenses, e)
			}
		}
		if len(catExpenses) == 0 {
			continue
		}
		blank()
		push(categoryPrefix+" "+displayName(c.Key), "", "", "", "", "", "")
		blank()
		start := rowIndex
		for i, e := range catExpenses {
			desc := e.Description
			if desc == "" {
				desc = noDescription
			}
			converted := core.Convert(e.Amount, e.Currency, primary)
			push(
				strconv.Itoa(i+1),
				desc,
				e.Date.String(),
				core.FormatAmountCSV(converted, primary),
				string(primary),
				core.FormatAmountCSV(e.Amount, e.Currency)+" "+string(e.Currency),
				displayName(e.Category),
			)
		}
		end := rowIndex - 1
		blank()
		subtotalRefs = append(subtotalRefs, fmt.Sprintf("D%d", rowIndex))
		push("", categoryTotalMark, "", fmt.Sprintf("=SUM(D%d:D%d)", start, end), string(primary), "", "")
		blank()
	}

	blank()
	push("", grandTotalMark, "", "=SUM("+strings.Join(subtotalRefs, ",")+")", string(primary), "", "")

	return strings.Join(rows, "\n")
}

// Unmarshal reconstructs a full ledger snapshot from CSV text. Banner rows
// set the category context, subtotal and grand-total rows are skipped, and
// any row without exactly 7 cells is dropped silently. Categories named by
// expense rows are auto-created with the default icon. Fresh ids are
// assigned from a counter seeded with the current time so they cannot
// collide with the ids being replaced.
func Unmarshal(text string) ledger.Snapshot {
	var snap ledger.Snapshot
	seen := make(map[string]bool)
	upsert := func(name string) string {
		key := core.SlugKey(name)
		if key != "" && !seen[key] {
			seen[key] = true
			snap.Categories = append(snap.Categories, core.Category{
				Key:  key,
				Name: strings.TrimSpace(name),
				Icon: core.DefaultIcon,
			})
		}
		return key
	}

	nextID := time.Now().UnixMilli()
	currentCategory := ""

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}
	start := 0
	if len(rows) > 0 && rows[0][0] == headerCell {
		start = 1
	}
	for _, cells := range rows[start:] {
		if allBlank(cells) {
			continue
		}
		if strings.HasPrefix(cells[0], categoryPrefix) {
			currentCategory = strings.TrimSpace(strings.TrimPrefix(cells[0], categoryPrefix))
			upsert(currentCategory)
			continue
		}
		if len(cells) > 1 && (strings.Contains(cells[1], categoryTotalMark) || strings.Contains(cells[1], grandTotalMark)) {
			continue
		}
		if len(cells) != 7 {
			continue
		}
		name := strings.TrimSpace(cells[6])
		if name == "" {
			name = currentCategory
		}
		key := upsert(name)
		date, _ := core.ParseMonth(cells[2])
		snap.Expenses = append(snap.Expenses, core.Expense{
			ID:          nextID,
			Description: cells[1],
			Date:        date,
			Amount:      core.ParseAmount(cells[3]),
			Currency:    core.Currency(cells[4]),
			Category:    key,
		})
		nextID++
	}
	return snap
}

// Filename suggests the download name for an export: the month and year of
// the batch being entered, or the current month when the date is blank.
func Filename(date core.Month, cat *i18n.Catalog) string {
	if date.IsZero() {
		now := time.Now()
		date = core.Month{Year: now.Year(), Month: int(now.Month())}
	}
	return fmt.Sprintf("Expense_Tracker_%s_%d.csv", cat.MonthName(date.Month), date.Year)
}

// escape wraps a field in double quotes when it contains a comma, quote or
// newline, doubling internal quotes (standard CSV escaping).
func escape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// splitLine splits a CSV line on commas outside balanced double quotes,
// trimming each cell and unescaping doubled quotes in quoted cells.
func splitLine(line string) []string {
	var cells []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			cells = append(cells, unquote(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	cells = append(cells, unquote(cur.String()))
	return cells
}

func unquote(cell string) string {
	c := strings.TrimSpace(cell)
	if len(c) >= 2 && strings.HasPrefix(c, `"`) && strings.HasSuffix(c, `"`) {
		c = strings.ReplaceAll(c[1:len(c)-1], `""`, `"`)
	}
	return c
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
