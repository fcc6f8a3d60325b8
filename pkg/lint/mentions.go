package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdlinker/pkg/fuzzy"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

type unlinkedTextDetector struct {
	baseDetector
}

func newUnlinkedTextDetector() *unlinkedTextDetector {
	return &unlinkedTextDetector{baseDetector{
		kind: KindUnlinkedText,
		desc: "Body text names another page without linking to it",
	}}
}

func (d *unlinkedTextDetector) Detect(ctx context.Context, a *Analysis) ([]Finding, error) {
	return UnlinkedMentions(ctx, a)
}

// UnlinkedMentions scans every valid page body for whole-word occurrences of
// other pages' titles and aliases that are not inside a reference.
func UnlinkedMentions(ctx context.Context, a *Analysis) ([]Finding, error) {
	perPage := make([][]Finding, len(a.Pages))
	matcher := newMentionMatcher(a.Aliases.Keys())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Options.Jobs, 1))

	for i, page := range a.Pages {
		if !a.Valid(page.Title) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perPage[i] = a.scanMentions(page, matcher)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("mention scan: %w", err)
	}

	var findings []Finding
	for _, found := range perPage {
		findings = append(findings, found...)
	}
	return findings, nil
}

// mentionMatcher finds every occurrence of every alias key in one pass over
// a folded body.
type mentionMatcher struct {
	keys []string
	trie *ahocorasick.Trie
}

func newMentionMatcher(keys []string) *mentionMatcher {
	m := &mentionMatcher{keys: make([]string, 0, len(keys))}
	for _, key := range keys {
		if key != "" {
			m.keys = append(m.keys, key)
		}
	}
	if len(m.keys) > 0 {
		m.trie = ahocorasick.NewTrieBuilder().AddStrings(m.keys).Build()
	}
	return m
}

// hit is one occurrence of keys[key] at byte offset start of the scanned text.
type hit struct {
	key   int
	start int
}

// find returns all occurrences, overlapping ones included.
func (m *mentionMatcher) find(text string) []hit {
	if m.trie == nil {
		return nil
	}
	matches := m.trie.MatchString(text)
	hits := make([]hit, 0, len(matches))
	for _, match := range matches {
		hits = append(hits, hit{
			key:   int(match.Pattern()), //nolint:gosec // Pattern indexes keys.
			start: int(match.Pos()),     //nolint:gosec // Pos is a byte offset into text.
		})
	}
	return hits
}

type mention struct {
	span   vault.Span
	alias  string
	target string
	fuzzy  bool
	score  int
}

func (a *Analysis) scanMentions(page *vault.Page, matcher *mentionMatcher) []Finding {
	body := page.Body
	folded, offsets := a.Normalizer.FoldMapped(body)

	blocked := make([]vault.Span, 0, len(page.References)+len(page.Skip))
	for _, ref := range page.References {
		blocked = append(blocked, ref.Span)
	}
	blocked = append(blocked, page.Skip...)

	free := func(span vault.Span) bool {
		if span.Start > 0 && body[span.Start-1] == '#' {
			return false
		}
		for _, b := range blocked {
			if b.Overlaps(span) {
				return false
			}
		}
		return true
	}

	var found []mention
	for _, h := range matcher.find(folded) {
		key := matcher.keys[h.key]
		target, ok := a.mentionTarget(key, page.Title)
		if !ok {
			continue
		}

		start, end := h.start, h.start+len(key)
		if offsets[start] < 0 || offsets[end] < 0 {
			continue
		}
		span := vault.Span{Start: offsets[start], End: offsets[end]}
		if !wholeWord(body, span) || !free(span) {
			continue
		}
		found = append(found, mention{span: span, alias: key, target: target})
	}

	if a.Options.FuzzyMentions {
		words := wordSpans(body)
		for _, key := range matcher.keys {
			if target, ok := a.mentionTarget(key, page.Title); ok {
				found = append(found, a.fuzzyMentions(body, words, key, target, free)...)
			}
		}
	}

	return a.selectMentions(page, found)
}

// mentionTarget picks the page a mention of key should link to. Keys the page
// itself claims are never reported.
func (a *Analysis) mentionTarget(key, self string) (string, bool) {
	if key == "" {
		return "", false
	}
	owners := a.Aliases.Owners(key)
	if slices.Contains(owners, self) {
		return "", false
	}
	if len(owners) == 0 {
		return "", false
	}
	return owners[0], true
}

func (a *Analysis) fuzzyMentions(body string, words []vault.Span, key, target string, free func(vault.Span) bool) []mention {
	width := len(wordSpans(key))
	if width == 0 {
		return nil
	}

	var out []mention
	for i := 0; i+width <= len(words); i++ {
		span := vault.Span{Start: words[i].Start, End: words[i+width-1].End}
		text := a.Normalizer.Fold(body[span.Start:span.End])
		if text == key {
			continue
		}
		score, ok := fuzzy.Score(text, key)
		if !ok || score < a.Options.Threshold || !free(span) {
			continue
		}
		out = append(out, mention{span: span, alias: key, target: target, fuzzy: true, score: score})
	}
	return out
}

// selectMentions keeps a non-overlapping subset, preferring the leftmost
// mention, then exact over fuzzy, then the longest.
func (a *Analysis) selectMentions(page *vault.Page, found []mention) []Finding {
	slices.SortFunc(found, func(x, y mention) int {
		return cmp.Or(
			cmp.Compare(x.span.Start, y.span.Start),
			compareBool(x.fuzzy, y.fuzzy),
			cmp.Compare(y.span.End, x.span.End),
			cmp.Compare(y.score, x.score),
			cmp.Compare(x.alias, y.alias),
		)
	})

	var findings []Finding
	end := -1
	for _, m := range found {
		if m.span.Start < end {
			continue
		}
		end = m.span.End

		f := &UnlinkedText{
			Source:     page.Title,
			SourcePath: page.Path,
			Span:       m.span,
			Text:       page.Body[m.span.Start:m.span.End],
			Alias:      m.alias,
			Target:     m.target,
			Fuzzy:      m.fuzzy,
			Score:      m.score,
		}
		if target, ok := a.Corpus.Page(m.target); ok {
			f.TargetPath = target.Path
		}
		findings = append(findings, f)
	}
	return findings
}

func compareBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wholeWord reports whether span is not glued to a word character on either side.
func wholeWord(body string, span vault.Span) bool {
	if span.Start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(body[:span.Start]); isWordRune(r) {
			return false
		}
	}
	if span.End < len(body) {
		if r, _ := utf8.DecodeRuneInString(body[span.End:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// wordSpans returns the byte ranges of maximal runs of word characters.
func wordSpans(s string) []vault.Span {
	var spans []vault.Span
	start := -1
	for i, r := range s {
		switch {
		case isWordRune(r) && start < 0:
			start = i
		case !isWordRune(r) && start >= 0:
			spans = append(spans, vault.Span{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, vault.Span{Start: start, End: len(s)})
	}
	return spans
}
