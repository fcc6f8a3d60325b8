package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/lint"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

func TestExcluder_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		id       string
		want     bool
	}{
		{name: "no patterns", id: "duplicate_alias:foo", want: false},
		{name: "kind glob", patterns: []string{"duplicate_alias:*"}, id: "duplicate_alias:foo", want: true},
		{name: "kind glob other kind", patterns: []string{"duplicate_alias:*"}, id: "similar_files:a:b", want: false},
		{name: "plain prefix", patterns: []string{"broken_wikilink:notes"}, id: "broken_wikilink:Notes:Missing", want: true},
		{name: "plain prefix mismatch", patterns: []string{"broken_wikilink:notes"}, id: "broken_wikilink:Other:Missing", want: false},
		{name: "case insensitive glob", patterns: []string{"Similar_Files:*:BETA"}, id: "similar_files:alpha:beta", want: true},
		{name: "single char", patterns: []string{"similar_files:?:b"}, id: "similar_files:a:b", want: true},
		{name: "alternatives", patterns: []string{"unlinked_text:{a,b}:*"}, id: "unlinked_text:b:foo", want: true},
		{name: "glob is anchored", patterns: []string{"alias:*"}, id: "duplicate_alias:foo", want: false},
		{name: "blank ignored", patterns: []string{"  "}, id: "duplicate_alias:foo", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ex, err := lint.NewExcluder(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ex.Match(tt.id))
		})
	}
}

func TestExcluder_Nil(t *testing.T) {
	t.Parallel()

	var ex *lint.Excluder
	assert.False(t, ex.Match("duplicate_alias:foo"))
	assert.True(t, ex.Empty())
}

func TestNewExcluder_Invalid(t *testing.T) {
	t.Parallel()

	_, err := lint.NewExcluder([]string{"ok", "bad[x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, lint.ErrInvalidExclude)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	broken := func(source string, start int) lint.Finding {
		return &lint.BrokenWikilink{Source: source, Target: "x", Span: vault.Span{Start: start, End: start + 5}}
	}
	dup := &lint.DuplicateAlias{Alias: "foo", Owners: []string{"A", "B"}}

	findings := []lint.Finding{
		broken("B", 10),
		broken("A", 20),
		dup,
		broken("A", 3),
		broken("A", 20),
		&lint.SimilarFiles{Pages: [2]string{"C", "D"}},
	}

	ex, err := lint.NewExcluder([]string{"duplicate_alias:*"})
	require.NoError(t, err)

	kept, suppressed := lint.Aggregate(findings, ex)
	assert.Equal(t, 1, suppressed)
	assert.Equal(t, []string{
		"similar_files:C:D@0",
		"broken_wikilink:A:x@3",
		"broken_wikilink:A:x@20",
		"broken_wikilink:B:x@10",
	}, summarize(kept))

	again, suppressedAgain := lint.Aggregate(kept, ex)
	assert.Equal(t, summarize(kept), summarize(again))
	assert.Zero(t, suppressedAgain)

	all, none := lint.Aggregate(findings, nil)
	assert.Len(t, all, 5)
	assert.Zero(t, none)
}
