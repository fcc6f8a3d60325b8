// Package ngram expands page titles and aliases into word n-grams.
package ngram

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidPattern is matched by PatternError.
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError reports a pattern that does not compile.
type PatternError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}

// Splitter turns a string into word segments.
type Splitter struct {
	spacing  *regexp.Regexp
	boundary *regexp.Regexp
}

// NewSplitter compiles the spacing and boundary patterns. An empty pattern
// disables that step; words are then split on whitespace only.
func NewSplitter(spacing, boundary string) (*Splitter, error) {
	s := &Splitter{}

	if spacing != "" {
		re, err := regexp.Compile(spacing)
		if err != nil {
			return nil, &PatternError{Field: "filename_spacing_pattern", Pattern: spacing, Err: err}
		}
		s.spacing = re
	}

	if boundary != "" {
		re, err := regexp.Compile(boundary)
		if err != nil {
			return nil, &PatternError{Field: "boundary_pattern", Pattern: boundary, Err: err}
		}
		s.boundary = re
	}

	return s, nil
}

// Spacing returns the compiled spacing pattern, or nil.
func (s *Splitter) Spacing() *regexp.Regexp {
	return s.spacing
}

// Segments splits text into words on the spacing pattern and then cuts the
// word sequence wherever the boundary pattern matches. Boundary text is
// dropped and empty segments are omitted.
func (s *Splitter) Segments(text string) [][]string {
	if s.spacing != nil {
		text = s.spacing.ReplaceAllLiteralString(text, " ")
	}

	parts := []string{text}
	if s.boundary != nil {
		parts = s.boundary.Split(text, -1)
	}

	segments := make([][]string, 0, len(parts))
	for _, part := range parts {
		if words := strings.Fields(part); len(words) > 0 {
			segments = append(segments, words)
		}
	}
	return segments
}

// Words returns every word of text across all segments.
func (s *Splitter) Words(text string) []string {
	var words []string
	for _, seg := range s.Segments(text) {
		words = append(words, seg...)
	}
	return words
}

// Gram is one contiguous run of words from a single segment.
type Gram struct {
	Text     string
	Words    int
	Complete bool
}

// Generate emits every window of 1..=n words of each segment.
// A gram is Complete when it covers its whole segment.
func Generate(segments [][]string, n int) []Gram {
	var grams []Gram
	for _, seg := range segments {
		for size := 1; size <= n && size <= len(seg); size++ {
			for i := 0; i+size <= len(seg); i++ {
				grams = append(grams, Gram{
					Text:     strings.Join(seg[i:i+size], " "),
					Words:    size,
					Complete: size == len(seg),
				})
			}
		}
	}
	return grams
}

// Entry is one normalized title or alias of a page.
type Entry struct {
	Page string
	Text string
}

// Occurrence records that a gram was generated from a page.
type Occurrence struct {
	Page     string
	Complete bool
}

// Index maps gram text to the pages that produced it. It is immutable once built.
type Index struct {
	grams map[string][]Occurrence
	keys  []string
}

// Build indexes entries sequentially.
func Build(entries []Entry, splitter *Splitter, n int) *Index {
	parts := make([][]Gram, len(entries))
	for i, e := range entries {
		parts[i] = Generate(splitter.Segments(e.Text), n)
	}
	return assemble(entries, parts)
}

// BuildParallel indexes entries with up to jobs goroutines. Each goroutine
// writes only its own slot; the index is assembled after all of them finish.
func BuildParallel(ctx context.Context, entries []Entry, splitter *Splitter, n, jobs int) (*Index, error) {
	parts := make([][]Gram, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = Generate(splitter.Segments(e.Text), n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build n-gram index: %w", err)
	}

	return assemble(entries, parts), nil
}

func assemble(entries []Entry, parts [][]Gram) *Index {
	seen := make(map[string]map[Occurrence]struct{})
	for i, grams := range parts {
		for _, gram := range grams {
			set, ok := seen[gram.Text]
			if !ok {
				set = make(map[Occurrence]struct{})
				seen[gram.Text] = set
			}
			set[Occurrence{Page: entries[i].Page, Complete: gram.Complete}] = struct{}{}
		}
	}

	ix := &Index{
		grams: make(map[string][]Occurrence, len(seen)),
		keys:  make([]string, 0, len(seen)),
	}
	for text, set := range seen {
		occ := make([]Occurrence, 0, len(set))
		for o := range set {
			occ = append(occ, o)
		}
		slices.SortFunc(occ, func(a, b Occurrence) int {
			if c := cmp.Compare(a.Page, b.Page); c != 0 {
				return c
			}
			switch {
			case a.Complete == b.Complete:
				return 0
			case !a.Complete:
				return -1
			default:
				return 1
			}
		})
		ix.grams[text] = occ
		ix.keys = append(ix.keys, text)
	}
	slices.Sort(ix.keys)

	return ix
}

// Lookup returns the occurrences of a gram, ordered by page.
func (ix *Index) Lookup(text string) []Occurrence {
	return ix.grams[text]
}

// Grams returns every indexed gram text in sorted order. The slice must not be modified.
func (ix *Index) Grams() []string {
	return ix.keys
}

// Len returns the number of distinct grams.
func (ix *Index) Len() int {
	return len(ix.keys)
}
