// Package view holds presentation logic that does not depend on a
// terminal: display order, progress summary and form drafts.
package view

import (
	"cmp"
	"slices"

	"github.com/idilsaglam/todo/internal/model"
)

// Compare orders todos for display: incomplete before completed, then
// higher priority first, then newest created_at first.
func Compare(a, b model.Todo) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt.Time)
}

// Sort returns the display order of items. Equal keys keep their
// collection order; items itself is not modified.
func Sort(items []model.Todo) []model.Todo {
	out := slices.Clone(items)
	slices.SortStableFunc(out, Compare)
	return out
}
