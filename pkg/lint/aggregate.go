package lint

import (
	"cmp"
	"slices"
)

// Aggregate merges detector output into the final finding list.
//
// Identical findings (same kind, ID and offset) collapse into one, excluded
// findings are dropped, and the rest are ordered by kind, page, offset and ID.
// It returns the kept findings and the number suppressed by ex.
func Aggregate(findings []Finding, ex *Excluder) ([]Finding, int) {
	type key struct {
		kind   Kind
		id     string
		offset int
	}

	seen := make(map[key]struct{}, len(findings))
	kept := make([]Finding, 0, len(findings))
	suppressed := 0

	for _, f := range findings {
		k := key{kind: f.Kind(), id: f.ID(), offset: f.Offset()}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if ex.Excluded(f) {
			suppressed++
			continue
		}
		kept = append(kept, f)
	}

	SortFindings(kept)
	return kept, suppressed
}

// SortFindings orders findings by kind, page, offset and ID.
func SortFindings(findings []Finding) {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.Kind(), b.Kind()),
			cmp.Compare(a.Page(), b.Page()),
			cmp.Compare(a.Offset(), b.Offset()),
			cmp.Compare(a.ID(), b.ID()),
		)
	})
}
