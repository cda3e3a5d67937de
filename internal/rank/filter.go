package rank

import (
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/sahilm/fuzzy"
)

// linkNames implements fuzzy.Source over link names.
type linkNames []model.Link

func (ln linkNames) String(i int) string { return ln[i].Name }
func (ln linkNames) Len() int            { return len(ln) }

// linkCategories implements fuzzy.Source over link categories.
type linkCategories []model.Link

func (lc linkCategories) String(i int) string { return lc[i].Category }
func (lc linkCategories) Len() int            { return len(lc) }

// Filter returns the links whose name or category fuzzy-matches the query,
// in catalog order. An empty query returns the input unchanged; filtering is
// orthogonal to the sort mode applied afterwards.
func Filter(links []model.Link, query string) []model.Link {
	if query == "" {
		return links
	}

	matched := make(map[int]bool)
	for _, m := range fuzzy.FindFrom(query, linkNames(links)) {
		matched[m.Index] = true
	}
	for _, m := range fuzzy.FindFrom(query, linkCategories(links)) {
		matched[m.Index] = true
	}

	result := []model.Link{}
	for i, link := range links {
		if matched[i] {
			result = append(result, link)
		}
	}
	return result
}
