// Package normalize maps page titles to alias strings and back.
//
// Both directions are an ordered list of literal substring substitutions
// applied left to right after optional case folding. The two lists are
// configured independently, so ToFilename(ToAlias(t)) == t is not guaranteed.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Substitution replaces every occurrence of From with To.
type Substitution struct {
	From string
	To   string
}

// Normalizer converts between title and alias space.
// It is safe for concurrent use.
type Normalizer struct {
	toAlias       []Substitution
	toFilename    []Substitution
	caseSensitive bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCaseSensitive keeps case instead of folding it.
func WithCaseSensitive(sensitive bool) Option {
	return func(n *Normalizer) {
		n.caseSensitive = sensitive
	}
}

// New creates a Normalizer. Substitutions with an empty From are ignored.
func New(toAlias, toFilename []Substitution, opts ...Option) *Normalizer {
	n := &Normalizer{
		toAlias:    compact(toAlias),
		toFilename: compact(toFilename),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func compact(subs []Substitution) []Substitution {
	out := make([]Substitution, 0, len(subs))
	for _, s := range subs {
		if s.From != "" {
			out = append(out, s)
		}
	}
	return out
}

// Fold applies case folding unless the normalizer is case sensitive.
func (n *Normalizer) Fold(s string) string {
	if n.caseSensitive {
		return s
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(s)
}

// CaseSensitive reports whether Fold is the identity.
func (n *Normalizer) CaseSensitive() bool {
	return n.caseSensitive
}

// ToAlias converts a file derived title into alias form.
func (n *Normalizer) ToAlias(title string) string {
	return apply(n.Fold(title), n.toAlias)
}

// ToFilename converts an alias or link target into title form.
func (n *Normalizer) ToFilename(alias string) string {
	return apply(n.Fold(alias), n.toFilename)
}

func apply(s string, subs []Substitution) string {
	for _, sub := range subs {
		s = strings.ReplaceAll(s, sub.From, sub.To)
	}
	return s
}

// FoldMapped folds s rune by rune and returns the folded text with an offset
// table. offsets[k] is the byte offset in s that folded byte k starts, or -1
// when k falls inside the expansion of a single source rune. The table has
// len(folded)+1 entries; the last maps to len(s).
func (n *Normalizer) FoldMapped(s string) (string, []int) {
	var (
		b       strings.Builder
		offsets = make([]int, 0, len(s)+1)
		caser   = cases.Fold()
	)
	b.Grow(len(s))

	for i, r := range s {
		part := string(r)
		if !n.caseSensitive {
			part = caser.String(part)
		}
		b.WriteString(part)
		offsets = append(offsets, i)
		for range len(part) - 1 {
			offsets = append(offsets, -1)
		}
	}
	offsets = append(offsets, len(s))

	return b.String(), offsets
}
