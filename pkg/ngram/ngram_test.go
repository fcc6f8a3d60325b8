package ngram_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/ngram"
)

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor."

func texts(grams []ngram.Gram, size int) []string {
	var out []string
	for _, g := range grams {
		if g.Words == size {
			out = append(out, g.Text)
		}
	}
	return out
}

func TestNewSplitter_InvalidPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spacing  string
		boundary string
		field    string
	}{
		{name: "bad spacing", spacing: "(", boundary: "[,]", field: "filename_spacing_pattern"},
		{name: "bad boundary", spacing: `\s`, boundary: "[", field: "boundary_pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ngram.NewSplitter(tt.spacing, tt.boundary)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ngram.ErrInvalidPattern))

			var pe *ngram.PatternError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestSplitter_Segments(t *testing.T) {
	t.Parallel()

	s, err := ngram.NewSplitter(`___|__|-|_|\s`, `[,./_]`)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{name: "spacing", input: "half-life 2", want: [][]string{{"half", "life", "2"}}},
		{name: "boundary", input: "foo bar/baz qux", want: [][]string{{"foo", "bar"}, {"baz", "qux"}}},
		{name: "logseq separator is spacing", input: "foo___bar", want: [][]string{{"foo", "bar"}}},
		{name: "empty", input: "", want: [][]string{}},
		{name: "only boundaries", input: ",./", want: [][]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.Segments(tt.input))
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	s, err := ngram.NewSplitter(`\s`, `[,.]`)
	require.NoError(t, err)
	segments := s.Segments(lorem)

	t.Run("monograms", func(t *testing.T) {
		t.Parallel()
		grams := ngram.Generate(segments, 1)
		assert.Equal(t, []string{
			"Lorem", "ipsum", "dolor", "sit", "amet",
			"consectetur", "adipiscing", "elit",
			"sed", "do", "eiusmod", "tempor",
		}, texts(grams, 1))
	})

	t.Run("bigrams never cross boundaries", func(t *testing.T) {
		t.Parallel()
		grams := ngram.Generate(segments, 2)
		assert.Equal(t, []string{
			"Lorem ipsum", "ipsum dolor", "dolor sit", "sit amet",
			"consectetur adipiscing", "adipiscing elit",
			"sed do", "do eiusmod", "eiusmod tempor",
		}, texts(grams, 2))
		assert.NotContains(t, texts(grams, 2), "amet consectetur")
	})

	t.Run("complete marks whole segments", func(t *testing.T) {
		t.Parallel()
		grams := ngram.Generate([][]string{{"a", "b"}, {"c"}}, 3)
		assert.Equal(t, []ngram.Gram{
			{Text: "a", Words: 1},
			{Text: "b", Words: 1},
			{Text: "a b", Words: 2, Complete: true},
			{Text: "c", Words: 1, Complete: true},
		}, grams)
	})

	t.Run("short segments yield no wide grams", func(t *testing.T) {
		t.Parallel()
		grams := ngram.Generate([][]string{{"solo"}}, 3)
		assert.Empty(t, texts(grams, 2))
		assert.Empty(t, texts(grams, 3))
	})
}

func TestBuild(t *testing.T) {
	t.Parallel()

	s, err := ngram.NewSplitter(`\s`, `[/]`)
	require.NoError(t, err)

	entries := []ngram.Entry{
		{Page: "b", Text: "project notes"},
		{Page: "a", Text: "project"},
		{Page: "a", Text: "project/notes"},
	}

	ix := ngram.Build(entries, s, 2)

	assert.Equal(t, []ngram.Occurrence{
		{Page: "a", Complete: true},
		{Page: "b", Complete: false},
	}, ix.Lookup("project"))
	assert.Equal(t, []ngram.Occurrence{{Page: "b", Complete: true}}, ix.Lookup("project notes"))
	assert.Equal(t, []string{"notes", "project", "project notes"}, ix.Grams())
	assert.Equal(t, 3, ix.Len())
	assert.Nil(t, ix.Lookup("missing"))
}

func TestBuild_EmptyText(t *testing.T) {
	t.Parallel()

	s, err := ngram.NewSplitter(`\s`, `[/]`)
	require.NoError(t, err)

	assert.Empty(t, s.Segments(""))
	assert.Empty(t, ngram.Generate(s.Segments(""), 2))

	ix := ngram.Build([]ngram.Entry{
		{Page: "a", Text: ""},
		{Page: "b", Text: "  "},
		{Page: "c", Text: "solo"},
	}, s, 2)

	assert.Equal(t, []string{"solo"}, ix.Grams())
	assert.Nil(t, ix.Lookup(""))
}

func TestBuildParallel_MatchesSequential(t *testing.T) {
	t.Parallel()

	s, err := ngram.NewSplitter(`___|__|-|_|\s`, `[,./_]`)
	require.NoError(t, err)

	entries := []ngram.Entry{
		{Page: "p1", Text: "the quick brown fox"},
		{Page: "p2", Text: "quick/brown dog"},
		{Page: "p3", Text: ""},
		{Page: "p4", Text: "lazy-dog"},
	}

	want := ngram.Build(entries, s, 3)
	got, err := ngram.BuildParallel(context.Background(), entries, s, 3, 2)
	require.NoError(t, err)

	require.Equal(t, want.Grams(), got.Grams())
	for _, g := range want.Grams() {
		assert.Equal(t, want.Lookup(g), got.Lookup(g), g)
	}
}

func TestBuildParallel_Cancelled(t *testing.T) {
	t.Parallel()

	s, err := ngram.NewSplitter(`\s`, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ngram.BuildParallel(ctx, []ngram.Entry{{Page: "a", Text: "x y"}}, s, 2, 1)
	require.ErrorIs(t, err, context.Canceled)
}
