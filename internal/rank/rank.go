// Package rank computes the derived link views: frequency ordering,
// category grouping with the synthetic Recent section, and fuzzy filtering.
// Everything here is a pure computation over the catalog, the click counts
// and the recent list.
package rank

import (
	"sort"
	"strings"

	"github.com/nikbrunner/newtab/internal/model"
)

// RecentCategory is the name of the synthetic group holding ad-hoc
// destinations that are not part of the catalog.
const RecentCategory = "Recent"

// Group is one category section of the grouped view.
type Group struct {
	Category string
	Links    []model.Link
}

// ByFrequency returns the links ordered by descending click count.
// Ties are broken by ascending case-insensitive name so the order is
// deterministic. The input slice is not modified.
func ByFrequency(links []model.Link, counts map[string]int) []model.Link {
	sorted := make([]model.Link, len(links))
	copy(sorted, links)

	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := counts[sorted[i].URL], counts[sorted[j].URL]
		if ci != cj {
			return ci > cj
		}
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	return sorted
}

// Groups partitions links by category, preserving each category's first-seen
// order and each link's relative order within its category. A "Recent" group
// is prepended holding only recent destinations whose URL does not appear in
// the full catalog; catalog links stay in their normal category and are never
// duplicated.
func Groups(links []model.Link, catalog []model.Link, recents []model.RecentLink) []Group {
	var groups []Group

	var adHoc []model.Link
	for _, r := range recents {
		if model.HasURL(catalog, r.URL) {
			continue
		}
		name := r.Name
		if name == "" {
			name = r.URL
		}
		adHoc = append(adHoc, model.Link{
			URL:      r.URL,
			Name:     name,
			Category: RecentCategory,
			Logo:     r.Logo,
		})
	}
	if len(adHoc) > 0 {
		groups = append(groups, Group{Category: RecentCategory, Links: adHoc})
	}

	index := make(map[string]int)
	for _, link := range links {
		i, ok := index[link.Category]
		if !ok {
			groups = append(groups, Group{Category: link.Category})
			i = len(groups) - 1
			index[link.Category] = i
		}
		groups[i].Links = append(groups[i].Links, link)
	}

	return groups
}
