package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/natrix/internal/grid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndRetrieveMap(t *testing.T) {
	store := openTestStore(t)

	m, err := grid.Parse("Ring\nXXXX\nX@ X\nXXXX\n")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if err := store.SaveMap(m, "ring.txt"); err != nil {
		t.Fatalf("SaveMap() failed: %v", err)
	}

	e, err := store.Map("Ring")
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if e.Origin != "ring.txt" {
		t.Errorf("Origin = %q", e.Origin)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := e.Map()
	if err != nil {
		t.Fatalf("stored body failed to parse: %v", err)
	}
	if !got.Equal(m) {
		t.Error("stored map differs from the saved one")
	}
}

func TestSaveMapUpserts(t *testing.T) {
	store := openTestStore(t)

	first, _ := grid.Parse("Same\n@\n")
	second, _ := grid.Parse("Same\nX @\n")
	if err := store.SaveMap(first, "a"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveMap(second, "b"); err != nil {
		t.Fatal(err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, expected 1 after upsert", n)
	}

	e, err := store.Map("Same")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := e.Map()
	if !got.Equal(second) || e.Origin != "b" {
		t.Error("second save should replace the first")
	}
}

func TestImportTextValidates(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.ImportText("Broken\nXXX\n", "broken.txt"); !errors.Is(err, grid.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	if n, _ := store.Count(); n != 0 {
		t.Errorf("invalid map should not be stored, count = %d", n)
	}

	m, err := store.ImportText("Good\n @\n", "good.txt")
	if err != nil {
		t.Fatalf("ImportText() failed: %v", err)
	}
	if m.Name != "Good" {
		t.Errorf("Name = %q", m.Name)
	}
}

func TestMapsOrderedByName(t *testing.T) {
	store := openTestStore(t)
	for _, text := range []string{"Zeta\n@\n", "Alpha\n@\n", "Mid\n@\n"} {
		if _, err := store.ImportText(text, "test"); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.Maps()
	if err != nil {
		t.Fatalf("Maps() failed: %v", err)
	}
	expected := []string{"Alpha", "Mid", "Zeta"}
	if len(entries) != len(expected) {
		t.Fatalf("got %d entries, expected %d", len(entries), len(expected))
	}
	for i, name := range expected {
		if entries[i].Name != name {
			t.Errorf("entry %d = %q, expected %q", i, entries[i].Name, name)
		}
	}

	maps, err := store.GridMaps()
	if err != nil {
		t.Fatalf("GridMaps() failed: %v", err)
	}
	if len(maps) != 3 || maps[0].Name != "Alpha" {
		t.Errorf("GridMaps() returned %d maps", len(maps))
	}
}

func TestGridMapsSkipsCorruptRows(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.ImportText("Fine\n@\n", "test"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec("INSERT INTO maps (name, body) VALUES ('Bad', 'Bad\nXX\n')"); err != nil {
		t.Fatal(err)
	}

	maps, err := store.GridMaps()
	if err == nil {
		t.Error("expected an error for the corrupt row")
	}
	if len(maps) != 1 || maps[0].Name != "Fine" {
		t.Errorf("valid maps should still be returned, got %d", len(maps))
	}
}

func TestDeleteMap(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.ImportText("Gone\n@\n", "test"); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteMap("Gone"); err != nil {
		t.Fatalf("DeleteMap() failed: %v", err)
	}
	if _, err := store.Map("Gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteMap("Gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting twice should be ErrNotFound, got %v", err)
	}
}
