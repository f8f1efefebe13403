// Package sorting holds the one task ordering used everywhere: the
// index groupings, the pagination windows and the board exporter all
// sort with the same comparator so slices stay stable across calls.
package sorting

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/tablerohq/tablero/internal/models"
)

// Compare is the canonical task ordering. It is pure and total:
// distinct tasks with distinct ids never compare equal, so repeated
// sorts of an unchanged dataset produce identical slices.
//
// Order of precedence:
//  1. both tasks carry an explicit ordinal -> ordinal ascending
//  2. priority, high > medium > low, absent treated as medium
//  3. updated date (created date when never updated), newest first
//  4. trailing numeric id, descending
//  5. full id string, descending (total-order backstop)
func Compare(a, b *models.Task) int {
	if a.Ordinal != nil && b.Ordinal != nil {
		if c := cmp.Compare(*a.Ordinal, *b.Ordinal); c != 0 {
			return c
		}
	}

	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}

	if c := compareDates(effectiveDate(b), effectiveDate(a)); c != 0 {
		return c
	}

	aID, aOK := models.TrailingID(a.ID)
	bID, bOK := models.TrailingID(b.ID)
	if aOK && bOK {
		if c := cmp.Compare(bID, aID); c != 0 {
			return c
		}
	}

	return strings.Compare(b.ID, a.ID)
}

// Sort orders tasks in place with Compare. The sort is stable, though
// Compare being a strict total order over distinct ids makes that
// moot in practice.
func Sort(tasks []*models.Task) {
	slices.SortStableFunc(tasks, Compare)
}

// Sorted returns a freshly sorted copy, leaving the input alone.
// Pagination windows slice these copies rather than a frozen array.
func Sorted(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, len(tasks))
	copy(out, tasks)
	Sort(out)
	return out
}

func effectiveDate(t *models.Task) string {
	if t.UpdatedDate != "" {
		return t.UpdatedDate
	}
	return t.CreatedDate
}

// dateLayouts are the formats task files are known to carry.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// compareDates parses both values and compares chronologically.
// Unparseable values compare as raw strings so the function stays
// total; for the conventional yyyy-mm-dd format the two agree anyway.
func compareDates(a, b string) int {
	at, aOK := parseDate(a)
	bt, bOK := parseDate(b)
	if aOK && bOK {
		return at.Compare(bt)
	}
	return strings.Compare(a, b)
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
