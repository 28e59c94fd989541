// Package i18n holds the static string tables used for display names and
// month names. There is deliberately no translation engine: catalogs are
// fixed maps, lookups fall back to the stored value.
package i18n

// Catalog is one language's string table.
type Catalog struct {
	Lang       string
	MonthNames [12]string
	// Categories maps category keys to translated display names.
	Categories map[string]string
}

var english = &Catalog{
	Lang: "en",
	MonthNames: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	Categories: map[string]string{
		"eating":    "Eating in the restaurant",
		"groceries": "Groceries",
		"furniture": "Furniture",
		"other":     "Other",
	},
}

var vietnamese = &Catalog{
	Lang: "vi",
	MonthNames: [12]string{
		"Tháng 1", "Tháng 2", "Tháng 3", "Tháng 4", "Tháng 5", "Tháng 6",
		"Tháng 7", "Tháng 8", "Tháng 9", "Tháng 10", "Tháng 11", "Tháng 12",
	},
	Categories: map[string]string{
		"eating":    "Ăn nhà hàng",
		"groceries": "Thực phẩm",
		"furniture": "Nội thất",
		"other":     "Khác",
	},
}

var catalogs = map[string]*Catalog{
	"en": english,
	"vi": vietnamese,
}

// Lookup returns the catalog for a language tag, defaulting to English.
func Lookup(lang string) *Catalog {
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return english
}

// Languages lists the available language tags.
func Languages() []string {
	return []string{"en", "vi"}
}

// CategoryName translates a category key, falling back to the stored name.
func (c *Catalog) CategoryName(key, storedName string) string {
	if name, ok := c.Categories[key]; ok {
		return name
	}
	return storedName
}

// MonthName returns the display name for a 1-based month, or "" when out
// of range.
func (c *Catalog) MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return c.MonthNames[month-1]
}
