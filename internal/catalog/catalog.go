// Package catalog loads the curated link list the dashboard renders.
// The canonical source is a generated links.json file; `newtab refresh`
// regenerates it from a markdown pipe table, and a browser bookmarks HTML
// export is accepted as an alternative source.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/nikbrunner/newtab/internal/model"
)

// LoadFile reads the generated catalog from a links.json file.
// Any failure yields an empty catalog and the error; callers render a
// "could not load" message and carry on.
func LoadFile(path string) ([]model.Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return []model.Link{}, err
	}

	var links []model.Link
	if err := json.Unmarshal(data, &links); err != nil {
		return []model.Link{}, err
	}
	return links, nil
}

// WriteFile writes the catalog to a links.json file, sorted by the Order
// column. Creates the directory if it doesn't exist.
func WriteFile(path string, links []model.Link) error {
	sorted := make([]model.Link, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
