package tui

import "github.com/nikbrunner/newtab/internal/model"

// RowKind discriminates list rows.
type RowKind int

const (
	RowHeader RowKind = iota
	RowLink
)

// Row is one rendered line of the links list: either a category header or
// a link with its click count.
type Row struct {
	Kind     RowKind
	Category string
	Link     model.Link
	Count    int
}

// IsLink reports whether the row is selectable.
func (r Row) IsLink() bool {
	return r.Kind == RowLink
}
