package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/newtab/internal/catalog"
	"github.com/nikbrunner/newtab/internal/model"
)

func TestLoadFile_MissingFileYieldsEmptyCatalog(t *testing.T) {
	links, err := catalog.LoadFile(filepath.Join(t.TempDir(), "links.json"))
	if err == nil {
		t.Error("expected an error for a missing file")
	}
	if len(links) != 0 {
		t.Errorf("expected empty catalog, got %d links", len(links))
	}
}

func TestLoadFile_CorruptFileYieldsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	links, err := catalog.LoadFile(path)
	if err == nil {
		t.Error("expected an error for corrupt JSON")
	}
	if len(links) != 0 {
		t.Errorf("expected empty catalog, got %d links", len(links))
	}
}

func TestWriteFile_SortsByOrderAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "links.json")

	links := []model.Link{
		{URL: "https://b.example", Name: "B", Category: "Tools", Order: 2},
		{URL: "https://a.example", Name: "A", Category: "Tools", Order: 1},
	}

	if err := catalog.WriteFile(path, links); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	loaded, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 links, got %d", len(loaded))
	}
	if loaded[0].Name != "A" || loaded[1].Name != "B" {
		t.Errorf("expected order-sorted catalog, got %s, %s", loaded[0].Name, loaded[1].Name)
	}
}
