// Package fuzzy scores how well a pattern aligns as a subsequence of a choice
// string, using fzf's v2 algorithm.
//
// Every matched rune earns a base score, runes at word starts and camel-case
// or digit transitions earn a bonus, consecutive runs keep the bonus of the
// run's first rune, and gaps are penalised. Exact substrings at word starts
// therefore score far above scattered matches.
package fuzzy

import (
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// initScheme fills fzf's character class and bonus tables. They stay zero
// until a scoring scheme is selected.
var initScheme = sync.OnceFunc(func() { algo.Init("default") }) //nolint:gochecknoglobals // One-time table setup.

// Score aligns pattern against choice. It returns false when pattern is not a
// subsequence of choice or when either string is empty. Matching ignores case
// unless pattern contains an upper case rune.
func Score(choice, pattern string) (int, bool) {
	if choice == "" || pattern == "" {
		return 0, false
	}

	initScheme()

	pat := []rune(pattern)
	caseSensitive := hasUpper(pat)
	if !caseSensitive {
		// fzf expects a pre-folded pattern for case-insensitive matching.
		for i, r := range pat {
			pat[i] = unicode.ToLower(r)
		}
	}

	text := util.ToChars([]byte(choice))
	result, _ := algo.FuzzyMatchV2(caseSensitive, false, true, &text, pat, false, nil)
	if result.Start < 0 {
		return 0, false
	}
	return result.Score, true
}

// Symmetric scores a and b in both directions and keeps the better result.
// It is commutative: Symmetric(a, b) == Symmetric(b, a).
func Symmetric(a, b string) (int, bool) {
	ab, okAB := Score(a, b)
	ba, okBA := Score(b, a)
	switch {
	case okAB && okBA:
		return max(ab, ba), true
	case okAB:
		return ab, true
	case okBA:
		return ba, true
	default:
		return 0, false
	}
}

func hasUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
