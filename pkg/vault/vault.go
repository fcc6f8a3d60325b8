// Package vault holds the parsed page corpus that the analysis engine consumes.
//
// A Page is produced once by the parsing layer and is read-only afterwards.
// Every detector shares the same Corpus without mutating it.
package vault

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrSpanOutOfBounds is matched by SpanError.
var ErrSpanOutOfBounds = errors.New("reference span out of bounds")

// ErrDuplicateTitle is matched by DuplicateTitleError.
var ErrDuplicateTitle = errors.New("duplicate page title")

// ReferenceKind distinguishes the syntactic form of a reference.
type ReferenceKind string

const (
	ReferenceWikilink ReferenceKind = "wikilink"
	ReferenceTag      ReferenceKind = "tag"
)

// Span is a half-open byte range [Start, End) within a page body.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Reference is one link or tag occurrence within a page body.
type Reference struct {
	// Target is the raw target text as written, without brackets or display label.
	Target string

	// Span covers the whole construct, brackets included.
	Span Span

	// Kind is the syntactic form.
	Kind ReferenceKind
}

// Page is one markdown file of the vault.
type Page struct {
	// Path is the file path, used for reporting only.
	Path string

	// Title is the page identity, derived from the file name.
	Title string

	// Aliases are the declared alternate names, in declaration order.
	Aliases []string

	// Body is the raw text that reference spans index into.
	Body string

	// References are the link and tag occurrences, in source order.
	References []Reference

	// Skip are body regions that never contain prose, such as frontmatter
	// and code. Mention scanning ignores them.
	Skip []Span
}

// SpanError reports a reference whose span does not fit the page body.
type SpanError struct {
	Page    string
	Index   int
	Span    Span
	BodyLen int
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("page %q: reference %d span [%d,%d) outside body of %d bytes",
		e.Page, e.Index, e.Span.Start, e.Span.End, e.BodyLen)
}

// Is lets errors.Is match ErrSpanOutOfBounds.
func (e *SpanError) Is(target error) bool {
	return target == ErrSpanOutOfBounds
}

// Validate checks that every reference span lies within the body.
func (p *Page) Validate() error {
	for i, ref := range p.References {
		if ref.Span.Start < 0 || ref.Span.End < ref.Span.Start || ref.Span.End > len(p.Body) {
			return &SpanError{Page: p.Title, Index: i, Span: ref.Span, BodyLen: len(p.Body)}
		}
	}
	return nil
}

// TitleFromPath derives a page title from its file name by dropping the directory and extension.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DuplicateTitleError reports a page left out of the corpus because an
// earlier path already derived the same title.
type DuplicateTitleError struct {
	Title string
	Path  string
	Kept  string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("%s: %q at %s is shadowed by %s", ErrDuplicateTitle, e.Title, e.Path, e.Kept)
}

// Is lets errors.Is match ErrDuplicateTitle.
func (e *DuplicateTitleError) Is(target error) bool {
	return target == ErrDuplicateTitle
}

// Corpus is the complete set of pages for one run, ordered by title.
type Corpus struct {
	pages    []*Page
	byTitle  map[string]*Page
	shadowed []*DuplicateTitleError
}

// NewCorpus indexes pages by title. Pages are sorted by title so that every
// consumer sees the same order regardless of discovery order. When several
// files derive one title the first path wins and the others are recorded
// as shadowed.
func NewCorpus(pages []*Page) *Corpus {
	sorted := slices.Clone(pages)
	slices.SortStableFunc(sorted, func(a, b *Page) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.Path, b.Path))
	})

	c := &Corpus{
		pages:   make([]*Page, 0, len(sorted)),
		byTitle: make(map[string]*Page, len(sorted)),
	}
	for _, page := range sorted {
		if prev, ok := c.byTitle[page.Title]; ok {
			c.shadowed = append(c.shadowed, &DuplicateTitleError{Title: page.Title, Path: page.Path, Kept: prev.Path})
			continue
		}
		c.byTitle[page.Title] = page
		c.pages = append(c.pages, page)
	}
	return c
}

// Shadowed returns the pages dropped for sharing a title, ordered by title then path.
func (c *Corpus) Shadowed() []*DuplicateTitleError {
	if c == nil {
		return nil
	}
	return c.shadowed
}

// Pages returns the pages ordered by title. The slice must not be modified.
func (c *Corpus) Pages() []*Page {
	if c == nil {
		return nil
	}
	return c.pages
}

// Page looks a page up by title.
func (c *Corpus) Page(title string) (*Page, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.byTitle[title]
	return p, ok
}

// Len returns the number of pages.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pages)
}
