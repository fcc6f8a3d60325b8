package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdlinker/pkg/fuzzy"
)

type similarDetector struct {
	baseDetector
}

func newSimilarDetector() *similarDetector {
	return &similarDetector{baseDetector{
		kind: KindSimilarFiles,
		desc: "Two page names, aliases or name fragments are near duplicates",
	}}
}

func (d *similarDetector) Detect(ctx context.Context, a *Analysis) ([]Finding, error) {
	return SimilarPages(ctx, a)
}

// pairKey identifies an unordered page pair by index, lo < hi.
type pairKey struct {
	lo, hi int
}

// match is the best scoring variant pair seen for a page pair.
// Variants are oriented to the pair: lo first.
type match struct {
	score    int
	variants [2]string
}

func (m match) better(o match) bool {
	if m.score != o.score {
		return m.score > o.score
	}
	if c := strings.Compare(m.variants[0], o.variants[0]); c != 0 {
		return c < 0
	}
	return m.variants[1] < o.variants[1]
}

// SimilarPages runs the all-pairs similarity scan.
//
// Row j compares every earlier page's names with page j's names, and every
// indexed n-gram of any other page with page j's names. Rows run in parallel,
// each writing only its own slot. Slots are merged afterwards keeping the best
// match per page pair.
func SimilarPages(ctx context.Context, a *Analysis) ([]Finding, error) {
	rows := make([]map[pairKey]match, len(a.Pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Options.Jobs, 1))

	for j := range a.Pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[j] = a.similarRow(j)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("similarity scan: %w", err)
	}

	best := make(map[pairKey]match)
	for _, row := range rows {
		for key, m := range row {
			if cur, ok := best[key]; !ok || m.better(cur) {
				best[key] = m
			}
		}
	}

	keys := make([]pairKey, 0, len(best))
	for key, m := range best {
		if m.score >= a.Options.Threshold {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(x, y pairKey) int {
		return cmp.Or(cmp.Compare(x.lo, y.lo), cmp.Compare(x.hi, y.hi))
	})

	findings := make([]Finding, 0, len(keys))
	for _, key := range keys {
		lo, hi := a.Pages[key.lo], a.Pages[key.hi]
		m := best[key]
		findings = append(findings, &SimilarFiles{
			Pages:    [2]string{lo.Title, hi.Title},
			Paths:    [2]string{lo.Path, hi.Path},
			Variants: m.variants,
			Score:    m.score,
		})
	}
	return findings, nil
}

func (a *Analysis) similarRow(j int) map[pairKey]match {
	out := make(map[pairKey]match)
	own := a.names[j].names

	consider := func(i int, fromI, fromJ string) {
		if a.ignore.Has(fromI, fromJ) {
			return
		}
		score, ok := fuzzy.Symmetric(fromI, fromJ)
		if !ok {
			return
		}
		key, m := pairKey{lo: i, hi: j}, match{score: score, variants: [2]string{fromI, fromJ}}
		if i > j {
			key = pairKey{lo: j, hi: i}
			m.variants = [2]string{fromJ, fromI}
		}
		if cur, seen := out[key]; !seen || m.better(cur) {
			out[key] = m
		}
	}

	for i := range j {
		if a.skipPair(i, j) {
			continue
		}
		for _, fromI := range a.names[i].names {
			for _, fromJ := range own {
				consider(i, fromI, fromJ)
			}
		}
	}

	title := a.Pages[j].Title
	for _, gram := range a.Index.Grams() {
		for _, occ := range a.Index.Lookup(gram) {
			if occ.Page == title {
				continue
			}
			i := a.byTitle[occ.Page]
			if a.skipPair(i, j) {
				continue
			}
			for _, fromJ := range own {
				consider(i, gram, fromJ)
			}
		}
	}

	return out
}

// skipPair reports whether two pages are never compared: they are the same
// page, their names are an ignored pair, or one is a hierarchy child of the other.
func (a *Analysis) skipPair(i, j int) bool {
	if i == j {
		return true
	}
	if a.ignore.Has(a.names[i].names[0], a.names[j].names[0]) ||
		a.ignore.Has(a.names[i].folded, a.names[j].folded) {
		return true
	}
	if !a.Options.SkipHierarchyGroups {
		return false
	}
	return a.hierarchyChild(a.names[i].folded, a.names[j].folded) ||
		a.hierarchyChild(a.names[j].folded, a.names[i].folded)
}

// hierarchyChild reports whether child is parent followed by a spacing separator.
func (a *Analysis) hierarchyChild(parent, child string) bool {
	if !strings.HasPrefix(child, parent) || len(child) == len(parent) {
		return false
	}
	spacing := a.Splitter.Spacing()
	if spacing == nil {
		return false
	}
	loc := spacing.FindStringIndex(child[len(parent):])
	return loc != nil && loc[0] == 0 && loc[1] > 0
}
