package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/fuzzy"
)

func TestScore_NoMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		choice  string
		pattern string
	}{
		{name: "empty pattern", choice: "alpha", pattern: ""},
		{name: "empty choice", choice: "", pattern: "a"},
		{name: "not a subsequence", choice: "alpha", pattern: "alpha2"},
		{name: "order matters", choice: "ab", pattern: "ba"},
		{name: "upper case pattern is case sensitive", choice: "alpha", pattern: "Alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := fuzzy.Score(tt.choice, tt.pattern)
			assert.False(t, ok)
		})
	}
}

func TestScore_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		choice  string
		pattern string
		want    int
	}{
		// 36 for the first rune at the start, 26 for each rune of the run.
		{name: "prefix run", choice: "alpha2", pattern: "alpha", want: 140},
		{name: "single rune mid word", choice: "abc", pattern: "b", want: 16},
		{name: "single rune after punctuation", choice: "a-b", pattern: "b", want: 32},
		{name: "lower pattern ignores case", choice: "Alpha", pattern: "al", want: 62},
		{name: "word after space", choice: "project beta", pattern: "project", want: 192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := fuzzy.Score(tt.choice, tt.pattern)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_Ordering(t *testing.T) {
	t.Parallel()

	exact, ok := fuzzy.Score("abc def", "abc")
	require.True(t, ok)
	scattered, ok := fuzzy.Score("axbxc def", "abc")
	require.True(t, ok)
	assert.Greater(t, exact, scattered)

	boundary, ok := fuzzy.Score("project notes", "notes")
	require.True(t, ok)
	inner, ok := fuzzy.Score("projectnotes", "notes")
	require.True(t, ok)
	assert.Greater(t, boundary, inner)
}

func TestScore_Unicode(t *testing.T) {
	t.Parallel()

	got, ok := fuzzy.Score("über alles", "über")
	require.True(t, ok)
	assert.Equal(t, 36+3*26, got)
}

func TestSymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"alpha", "alpha2"},
		{"project notes", "notes"},
		{"cat", "dog"},
		{"", "x"},
	}

	for _, p := range pairs {
		ab, okAB := fuzzy.Symmetric(p[0], p[1])
		ba, okBA := fuzzy.Symmetric(p[1], p[0])
		assert.Equal(t, okAB, okBA, p)
		assert.Equal(t, ab, ba, p)
	}

	score, ok := fuzzy.Symmetric("alpha", "alpha2")
	require.True(t, ok)
	assert.Equal(t, 140, score)

	_, ok = fuzzy.Symmetric("cat", "dog")
	assert.False(t, ok)
}
