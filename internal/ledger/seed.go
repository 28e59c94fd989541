package ledger

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"splittab/internal/core"
)

// SeedFromDir loads the category seed file from base/seed_categories.txt.
// Each line is "icon|name" or just "name" (default icon); blank lines and
// "#" comments are skipped. Falls back to the built-in defaults when the
// file is missing or empty.
func SeedFromDir(base string) []core.Category {
	cats := readSeedFile(filepath.Join(base, "seed_categories.txt"))
	if len(cats) == 0 {
		return DefaultCategories()
	}
	return cats
}

func readSeedFile(path string) []core.Category {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	seen := map[string]struct{}{}
	var out []core.Category
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		icon := core.DefaultIcon
		name := line
		if i := strings.IndexByte(line, '|'); i >= 0 {
			if v := strings.TrimSpace(line[:i]); v != "" {
				icon = v
			}
			name = strings.TrimSpace(line[i+1:])
		}
		key := core.SlugKey(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, core.Category{Key: key, Name: name, Icon: icon})
	}
	return out
}
