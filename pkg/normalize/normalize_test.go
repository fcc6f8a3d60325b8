package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlinker/pkg/normalize"
)

func logseq(opts ...normalize.Option) *normalize.Normalizer {
	return normalize.New(
		[]normalize.Substitution{{From: "___", To: "/"}},
		[]normalize.Substitution{{From: "/", To: "___"}},
		opts...,
	)
}

func TestNormalizer_ToAlias(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Alpha", want: "alpha"},
		{name: "hierarchy", input: "Foo___Bar", want: "foo/bar"},
		{name: "nested hierarchy", input: "a___b___c", want: "a/b/c"},
		{name: "unmapped passes through", input: "half-life 2", want: "half-life 2"},
		{name: "empty", input: "", want: ""},
		{name: "unicode fold", input: "ÜBER", want: "über"},
	}

	n := logseq()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.ToAlias(tt.input))
		})
	}
}

func TestNormalizer_ToFilename(t *testing.T) {
	t.Parallel()

	n := logseq()
	assert.Equal(t, "foo___bar", n.ToFilename("Foo/Bar"))
	assert.Equal(t, "nonexistent", n.ToFilename("Nonexistent"))
}

func TestNormalizer_OrderMatters(t *testing.T) {
	t.Parallel()

	forward := normalize.New([]normalize.Substitution{
		{From: "ab", To: "x"},
		{From: "x", To: "y"},
	}, nil)
	reversed := normalize.New([]normalize.Substitution{
		{From: "x", To: "y"},
		{From: "ab", To: "x"},
	}, nil)

	assert.Equal(t, "y", forward.ToAlias("ab"))
	assert.Equal(t, "x", reversed.ToAlias("ab"))
}

func TestNormalizer_CaseSensitive(t *testing.T) {
	t.Parallel()

	n := logseq(normalize.WithCaseSensitive(true))
	assert.True(t, n.CaseSensitive())
	assert.Equal(t, "Foo/Bar", n.ToAlias("Foo___Bar"))
	assert.Equal(t, "MiXeD", n.Fold("MiXeD"))
}

func TestNormalizer_EmptyFromIgnored(t *testing.T) {
	t.Parallel()

	n := normalize.New([]normalize.Substitution{{From: "", To: "!"}}, nil)
	assert.Equal(t, "abc", n.ToAlias("abc"))
}

func TestNormalizer_NotRequiredToRoundTrip(t *testing.T) {
	t.Parallel()

	n := normalize.New(
		[]normalize.Substitution{{From: "___", To: "/"}},
		[]normalize.Substitution{{From: "/", To: "%2F"}},
	)
	assert.Equal(t, "a/b", n.ToAlias("a___b"))
	assert.Equal(t, "a%2Fb", n.ToFilename(n.ToAlias("a___b")))
}

func TestNormalizer_FoldMapped(t *testing.T) {
	t.Parallel()

	folded, offsets := logseq().FoldMapped("Aß b")
	assert.Equal(t, "ass b", folded)
	assert.Equal(t, []int{0, 1, -1, 3, 4, 5}, offsets)

	folded, offsets = logseq(normalize.WithCaseSensitive(true)).FoldMapped("Ab")
	assert.Equal(t, "Ab", folded)
	assert.Equal(t, []int{0, 1, 2}, offsets)
}
