package vault_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/vault"
)

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		span    vault.Span
		wantErr bool
	}{
		{name: "inside", body: "see [[b]]", span: vault.Span{Start: 4, End: 9}},
		{name: "empty at end", body: "abc", span: vault.Span{Start: 3, End: 3}},
		{name: "past end", body: "abc", span: vault.Span{Start: 1, End: 4}, wantErr: true},
		{name: "negative start", body: "abc", span: vault.Span{Start: -1, End: 2}, wantErr: true},
		{name: "inverted", body: "abc", span: vault.Span{Start: 2, End: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := &vault.Page{
				Title:      "a",
				Body:       tt.body,
				References: []vault.Reference{{Target: "b", Span: tt.span}},
			}

			err := page.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, vault.ErrSpanOutOfBounds))

			var spanErr *vault.SpanError
			require.ErrorAs(t, err, &spanErr)
			assert.Equal(t, "a", spanErr.Page)
			assert.Equal(t, len(tt.body), spanErr.BodyLen)
		})
	}
}

func TestSpan(t *testing.T) {
	t.Parallel()

	a := vault.Span{Start: 2, End: 6}
	assert.Equal(t, 4, a.Len())
	assert.True(t, a.Overlaps(vault.Span{Start: 5, End: 9}))
	assert.False(t, a.Overlaps(vault.Span{Start: 6, End: 9}))
	assert.True(t, a.Contains(vault.Span{Start: 2, End: 6}))
	assert.False(t, a.Contains(vault.Span{Start: 1, End: 3}))
}

func TestTitleFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "foo___bar", vault.TitleFromPath("pages/foo___bar.md"))
	assert.Equal(t, "notes.v2", vault.TitleFromPath("/vault/notes.v2.markdown"))
	assert.Equal(t, "README", vault.TitleFromPath("README"))
}

func TestNewCorpus(t *testing.T) {
	t.Parallel()

	t.Run("orders pages by title", func(t *testing.T) {
		t.Parallel()

		corpus := vault.NewCorpus([]*vault.Page{
			{Title: "gamma", Path: "gamma.md"},
			{Title: "alpha", Path: "alpha.md"},
			{Title: "beta", Path: "beta.md"},
		})
		assert.Empty(t, corpus.Shadowed())
		require.Equal(t, 3, corpus.Len())

		var titles []string
		for _, p := range corpus.Pages() {
			titles = append(titles, p.Title)
		}
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, titles)

		page, ok := corpus.Page("beta")
		require.True(t, ok)
		assert.Equal(t, "beta.md", page.Path)
	})

	t.Run("first path wins a shared title", func(t *testing.T) {
		t.Parallel()

		corpus := vault.NewCorpus([]*vault.Page{
			{Title: "index", Path: "b/index.md"},
			{Title: "other", Path: "other.md"},
			{Title: "index", Path: "a/index.md"},
			{Title: "index", Path: "c/index.md"},
		})
		require.Equal(t, 2, corpus.Len())

		kept, ok := corpus.Page("index")
		require.True(t, ok)
		assert.Equal(t, "a/index.md", kept.Path)

		shadowed := corpus.Shadowed()
		require.Len(t, shadowed, 2)
		assert.Equal(t, "b/index.md", shadowed[0].Path)
		assert.Equal(t, "c/index.md", shadowed[1].Path)
		assert.Equal(t, "a/index.md", shadowed[0].Kept)
		require.ErrorIs(t, shadowed[0], vault.ErrDuplicateTitle)
		assert.Contains(t, shadowed[0].Error(), "a/index.md")
	})

	t.Run("nil corpus is empty", func(t *testing.T) {
		t.Parallel()

		var corpus *vault.Corpus
		assert.Equal(t, 0, corpus.Len())
		assert.Nil(t, corpus.Pages())
	})
}
