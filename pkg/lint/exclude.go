package lint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidExclude is returned for an exclusion pattern that does not compile.
var ErrInvalidExclude = errors.New("invalid exclude pattern")

// Excluder suppresses findings whose ID matches a pattern.
//
// Matching is case insensitive. A pattern containing glob metacharacters is
// matched against the whole ID; a plain pattern matches any ID it prefixes,
// so "duplicate_alias" silences every duplicate alias finding.
type Excluder struct {
	globs    []glob.Glob
	prefixes []string
}

// NewExcluder compiles patterns. Blank patterns are ignored.
func NewExcluder(patterns []string) (*Excluder, error) {
	ex := &Excluder{}
	for _, pattern := range patterns {
		p := strings.ToLower(strings.TrimSpace(pattern))
		if p == "" {
			continue
		}
		if !strings.ContainsAny(p, `*?[{\`) {
			ex.prefixes = append(ex.prefixes, p)
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExclude, pattern, err)
		}
		ex.globs = append(ex.globs, g)
	}
	return ex, nil
}

// Match reports whether id is excluded.
func (ex *Excluder) Match(id string) bool {
	if ex == nil {
		return false
	}
	id = strings.ToLower(id)
	for _, p := range ex.prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	for _, g := range ex.globs {
		if g.Match(id) {
			return true
		}
	}
	return false
}

// Excluded reports whether f is excluded.
func (ex *Excluder) Excluded(f Finding) bool {
	return ex.Match(f.ID())
}

// Empty reports whether no pattern is configured.
func (ex *Excluder) Empty() bool {
	return ex == nil || len(ex.globs)+len(ex.prefixes) == 0
}
