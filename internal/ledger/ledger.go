// Package ledger holds the in-memory expense ledger: expense records,
// the ordered category map, the selection set and the inline-edit cursor,
// all behind one mutex with a small set of transition methods. Nothing is
// persisted; CSV export/import is the only way state leaves the process.
package ledger

import (
	"strings"
	"sync"

	"splittab/internal/core"
)

// DeleteMode selects what a category deletion removes.
type DeleteMode string

const (
	// DeleteCascade removes the category and every expense referencing it.
	DeleteCascade DeleteMode = "cascade"
	// DeleteCategoryOnly removes the definition, orphaning its expenses.
	DeleteCategoryOnly DeleteMode = "category"
	// DeleteExpensesOnly clears the expenses but keeps the empty category.
	DeleteExpensesOnly DeleteMode = "expenses"
)

// ParseDeleteMode maps a request parameter to a DeleteMode, defaulting to
// cascade for unrecognized values.
func ParseDeleteMode(s string) DeleteMode {
	switch DeleteMode(s) {
	case DeleteCategoryOnly:
		return DeleteCategoryOnly
	case DeleteExpensesOnly:
		return DeleteExpensesOnly
	default:
		return DeleteCascade
	}
}

// ExpenseEdit carries the replacement fields for an inline edit. The raw
// amount goes through the same permissive parse as on creation.
type ExpenseEdit struct {
	Description string
	RawAmount   string
	Currency    core.Currency
	Category    string
	Date        core.Month
}

// Snapshot is an ordered copy of the ledger's durable state, as consumed
// and produced by the CSV codec.
type Snapshot struct {
	Expenses   []core.Expense
	Categories []core.Category // in category-map iteration order
}

// Ledger is the mutex-guarded state object.
type Ledger struct {
	mu        sync.Mutex
	nextID    int64
	rev       int64
	expenses  []core.Expense
	cats      map[string]core.Category
	catOrder  []string
	selected  map[int64]struct{}
	editingID int64 // 0 when no inline edit is in progress
}

// New creates a ledger seeded with the given categories, in order.
func New(seed []core.Category) *Ledger {
	l := &Ledger{
		nextID:   1,
		cats:     make(map[string]core.Category),
		selected: make(map[int64]struct{}),
	}
	for _, c := range seed {
		if c.Key == "" {
			c.Key = core.SlugKey(c.Name)
		}
		if c.Icon == "" {
			c.Icon = core.DefaultIcon
		}
		l.put(c)
	}
	return l
}

// DefaultCategories returns the stock category set used when no seed file
// is configured.
func DefaultCategories() []core.Category {
	return []core.Category{
		{Key: "eating", Name: "Eating in the restaurant", Icon: "🍽️"},
		{Key: "groceries", Name: "Groceries", Icon: "🛒"},
		{Key: "furniture", Name: "Furniture", Icon: "🪑"},
		{Key: "other", Name: "Other", Icon: "📦"},
	}
}

// put inserts or overwrites a category, preserving first-insert order.
// Callers hold l.mu (or own the ledger exclusively, as New does).
func (l *Ledger) put(c core.Category) {
	if _, exists := l.cats[c.Key]; !exists {
		l.catOrder = append(l.catOrder, c.Key)
	}
	l.cats[c.Key] = c
}

// AddExpenses creates a batch of expenses from the multi-entry form input.
// The amount field may hold several entries separated by ";" or "+"; the
// description field splits the same way. A single description is broadcast
// across all amounts, an absent description yields empty ones, and any
// other count mismatch fails with core.ErrCountMismatch leaving the ledger
// untouched. An amount field with no entries is a no-op.
func (l *Ledger) AddExpenses(rawAmount, rawDescription string, currency core.Currency, categoryKey string, date core.Month) ([]core.Expense, error) {
	amounts := core.SplitEntries(rawAmount)
	if len(amounts) == 0 {
		return nil, nil
	}
	descs := core.SplitEntries(rawDescription)
	switch {
	case len(descs) == 0:
		descs = make([]string, len(amounts))
	case len(descs) == 1 && len(amounts) > 1:
		one := descs[0]
		descs = make([]string, len(amounts))
		for i := range descs {
			descs[i] = one
		}
	case len(descs) != len(amounts):
		return nil, core.ErrCountMismatch
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	created := make([]core.Expense, 0, len(amounts))
	for i, raw := range amounts {
		e := core.Expense{
			ID:          l.nextID,
			Description: descs[i],
			Amount:      core.ParseAmount(raw),
			Currency:    currency,
			Category:    categoryKey,
			Date:        date,
		}
		l.nextID++
		l.expenses = append(l.expenses, e)
		created = append(created, e)
	}
	l.rev++
	return created, nil
}

// DeleteExpense removes one record by id. The id also leaves the selection
// set, and an inline edit on that record is cancelled.
func (l *Ledger) DeleteExpense(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.expenses[:0]
	for _, e := range l.expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.expenses = kept
	delete(l.selected, id)
	if l.editingID == id {
		l.editingID = 0
	}
	l.rev++
}

// DeleteCategory removes a category per the given mode. Orphaned expenses
// (category-only mode) keep their key and render by raw key afterwards.
func (l *Ledger) DeleteCategory(key string, mode DeleteMode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if mode == DeleteCascade || mode == DeleteExpensesOnly {
		kept := l.expenses[:0]
		for _, e := range l.expenses {
			if e.Category == key {
				delete(l.selected, e.ID)
				if l.editingID == e.ID {
					l.editingID = 0
				}
				continue
			}
			kept = append(kept, e)
		}
		l.expenses = kept
	}
	if mode == DeleteCascade || mode == DeleteCategoryOnly {
		if _, ok := l.cats[key]; ok {
			delete(l.cats, key)
			order := l.catOrder[:0]
			for _, k := range l.catOrder {
				if k != key {
					order = append(order, k)
				}
			}
			l.catOrder = order
		}
	}
	l.rev++
}

// EditExpense replaces the mutable fields of one expense by id.
func (l *Ledger) EditExpense(id int64, fields ExpenseEdit) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.expenses {
		if l.expenses[i].ID != id {
			continue
		}
		l.expenses[i].Description = fields.Description
		l.expenses[i].Amount = core.ParseAmount(fields.RawAmount)
		l.expenses[i].Currency = fields.Currency
		l.expenses[i].Category = fields.Category
		l.expenses[i].Date = fields.Date
		if l.editingID == id {
			l.editingID = 0
		}
		l.rev++
		return nil
	}
	return core.ErrUnknownExpense
}

// ApplyBatchEdit applies the provided fields to every selected expense.
// Empty description and empty category each mean "leave unchanged"; both
// empty is a no-op. The selection is cleared afterwards.
func (l *Ledger) ApplyBatchEdit(description, categoryKey string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	description = strings.TrimSpace(description)
	if description == "" && categoryKey == "" {
		return
	}
	for i := range l.expenses {
		if _, ok := l.selected[l.expenses[i].ID]; !ok {
			continue
		}
		if description != "" {
			l.expenses[i].Description = description
		}
		if categoryKey != "" {
			l.expenses[i].Category = categoryKey
		}
	}
	l.selected = make(map[int64]struct{})
	l.rev++
}

// ToggleSelect adds the id to the selection set if absent, removes it if
// present.
func (l *Ledger) ToggleSelect(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
	} else {
		l.selected[id] = struct{}{}
	}
	l.rev++
}

// ToggleSelectAllInCategory selects every expense in the category, or
// deselects them all when every one is already selected. Selections in
// other categories are untouched.
func (l *Ledger) ToggleSelectAllInCategory(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ids []int64
	for _, e := range l.expenses {
		if e.Category == key {
			ids = append(ids, e.ID)
		}
	}
	allSelected := len(ids) > 0
	for _, id := range ids {
		if _, ok := l.selected[id]; !ok {
			allSelected = false
			break
		}
	}
	for _, id := range ids {
		if allSelected {
			delete(l.selected, id)
		} else {
			l.selected[id] = struct{}{}
		}
	}
	l.rev++
}

// HasExpensesIn reports whether any expense carries the category key.
// True for orphaned keys whose category record is gone.
func (l *Ledger) HasExpensesIn(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.expenses {
		if e.Category == key {
			return true
		}
	}
	return false
}

// Expense returns one record by id.
func (l *Ledger) Expense(id int64) (core.Expense, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// IsSelected reports whether the id is currently selected.
func (l *Ledger) IsSelected(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.selected[id]
	return ok
}

// SelectedCount returns the size of the selection set.
func (l *Ledger) SelectedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.selected)
}

// SetEditing marks an expense as under inline edit; 0 clears the cursor.
func (l *Ledger) SetEditing(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editingID = id
	l.rev++
}

// Editing returns the id under inline edit, 0 when none.
func (l *Ledger) Editing() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editingID
}

// UpsertCategory derives the key from the name and inserts or overwrites
// the category (last-write-wins on key collision). Both the category form
// and the CSV import go through here. The returned key is the slug.
func (l *Ledger) UpsertCategory(name, icon string) (string, error) {
	key := core.SlugKey(name)
	if key == "" {
		return "", core.ErrEmptyName
	}
	if icon == "" {
		icon = core.DefaultIcon
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.put(core.Category{Key: key, Name: strings.TrimSpace(name), Icon: icon})
	l.rev++
	return key, nil
}

// EditCategory updates a category's name and icon in place. The key is
// preserved so existing expenses keep resolving.
func (l *Ledger) EditCategory(key, name, icon string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.cats[key]
	if !ok {
		return core.ErrUnknownCategory
	}
	if strings.TrimSpace(name) != "" {
		c.Name = strings.TrimSpace(name)
	}
	if icon != "" {
		c.Icon = icon
	}
	l.cats[key] = c
	l.rev++
	return nil
}

// Category looks up a category definition by key.
func (l *Ledger) Category(key string) (core.Category, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.cats[key]
	return c, ok
}

// GrandTotal sums every expense converted into the primary currency.
// NaN amounts propagate into the sum.
func (l *Ledger) GrandTotal(primary core.Currency) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum float64
	for _, e := range l.expenses {
		sum += core.Convert(e.Amount, e.Currency, primary)
	}
	return sum
}

// CategoryTotal sums the expenses of one category in the primary currency.
func (l *Ledger) CategoryTotal(key string, primary core.Currency) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum float64
	for _, e := range l.expenses {
		if e.Category == key {
			sum += core.Convert(e.Amount, e.Currency, primary)
		}
	}
	return sum
}

// Snapshot copies the durable state out, categories in insertion order.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	snap := Snapshot{
		Expenses:   make([]core.Expense, len(l.expenses)),
		Categories: make([]core.Category, 0, len(l.catOrder)),
	}
	copy(snap.Expenses, l.expenses)
	for _, k := range l.catOrder {
		snap.Categories = append(snap.Categories, l.cats[k])
	}
	return snap
}

// Replace swaps in a whole new expense collection and category map. This
// is the destructive CSV-import path: nothing is merged, the selection and
// edit cursor are reset, and the id counter moves past the incoming ids.
func (l *Ledger) Replace(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = make([]core.Expense, len(snap.Expenses))
	copy(l.expenses, snap.Expenses)
	l.cats = make(map[string]core.Category, len(snap.Categories))
	l.catOrder = l.catOrder[:0]
	for _, c := range snap.Categories {
		l.put(c)
	}
	l.selected = make(map[int64]struct{})
	l.editingID = 0
	for _, e := range l.expenses {
		if e.ID >= l.nextID {
			l.nextID = e.ID + 1
		}
	}
	l.rev++
}

// Revision increments on every mutation; render caches key off it.
func (l *Ledger) Revision() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rev
}
