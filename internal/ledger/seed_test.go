package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"splittab/internal/core"
)

func TestSeedFromDir(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\n\n🍽️|Eating in the restaurant\nGroceries\n🍽️|Eating in the restaurant\n"
	if err := os.WriteFile(filepath.Join(dir, "seed_categories.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cats := SeedFromDir(dir)
	if len(cats) != 2 {
		t.Fatalf("categories = %d, want 2 (duplicate key dropped)", len(cats))
	}
	if cats[0].Key != "eating_in_the_restaurant" || cats[0].Icon != "🍽️" {
		t.Errorf("first category = %+v", cats[0])
	}
	if cats[1].Key != "groceries" || cats[1].Icon != core.DefaultIcon {
		t.Errorf("bare line should get the default icon: %+v", cats[1])
	}
}

func TestSeedFromDirMissingFile(t *testing.T) {
	cats := SeedFromDir(t.TempDir())
	if len(cats) != len(DefaultCategories()) {
		t.Errorf("missing seed file should fall back to defaults, got %d categories", len(cats))
	}
}
