package goldmark

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/vault"
)

func spanOf(t *testing.T, content, needle string) vault.Span {
	t.Helper()
	i := strings.Index(content, needle)
	require.GreaterOrEqual(t, i, 0, "%q not in content", needle)
	return vault.Span{Start: i, End: i + len(needle)}
}

func covered(page *vault.Page, span vault.Span) bool {
	for _, s := range page.Skip {
		if s.Contains(span) {
			return true
		}
	}
	return false
}

func parse(t *testing.T, path, content string) *vault.Page {
	t.Helper()
	page, err := New(FlavorGFM).Parse(context.Background(), path, []byte(content))
	require.NoError(t, err)
	require.NoError(t, page.Validate())
	return page
}

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantFlavor, New(tt.flavor).Flavor())
		})
	}
}

func TestParser_Wikilinks(t *testing.T) {
	t.Parallel()

	content := "# Hello\n\nSee [[Beta]] and [[Gamma|the gamma]] or [[Delta#Intro]].\n\n- nested [[ Epsilon ]]\n"
	page := parse(t, "pages/Alpha.md", content)

	assert.Equal(t, "pages/Alpha.md", page.Path)
	assert.Equal(t, "Alpha", page.Title)
	assert.Equal(t, content, page.Body)

	assert.Equal(t, []vault.Reference{
		{Target: "Beta", Span: spanOf(t, content, "[[Beta]]"), Kind: vault.ReferenceWikilink},
		{Target: "Gamma", Span: spanOf(t, content, "[[Gamma|the gamma]]"), Kind: vault.ReferenceWikilink},
		{Target: "Delta", Span: spanOf(t, content, "[[Delta#Intro]]"), Kind: vault.ReferenceWikilink},
		{Target: "Epsilon", Span: spanOf(t, content, "[[ Epsilon ]]"), Kind: vault.ReferenceWikilink},
	}, page.References)
}

func TestParser_NotWikilinks(t *testing.T) {
	t.Parallel()

	for _, content := range []string{
		"[[unclosed\n",
		"[[|label only]]\n",
		"[[]]\n",
		"[single](url)\n",
		"[[a [b] c]]\n",
	} {
		page := parse(t, "x.md", content)
		assert.Empty(t, page.References, "content %q", content)
	}
}

func TestParser_Tags(t *testing.T) {
	t.Parallel()

	content := "Filed under #project and #[[Big Idea]], not a#b or &#35; or ## twice.\n"
	page := parse(t, "x.md", content)

	assert.Equal(t, []vault.Reference{
		{Target: "project", Span: spanOf(t, content, "#project"), Kind: vault.ReferenceTag},
		{Target: "Big Idea", Span: spanOf(t, content, "#[[Big Idea]]"), Kind: vault.ReferenceTag},
	}, page.References)
}

func TestParser_Code(t *testing.T) {
	t.Parallel()

	content := "```md\n[[Inside]]\n```\n\nUse `[[Code]]` here and [[Real]].\n\n    [[Indented]]\n"
	page := parse(t, "x.md", content)

	require.Len(t, page.References, 1)
	assert.Equal(t, "Real", page.References[0].Target)

	assert.True(t, covered(page, spanOf(t, content, "[[Inside]]")))
	assert.True(t, covered(page, spanOf(t, content, "[[Code]]")))
	assert.True(t, covered(page, spanOf(t, content, "[[Indented]]")))
	assert.False(t, covered(page, spanOf(t, content, "here")))
}

func TestParser_LinksAndURLs(t *testing.T) {
	t.Parallel()

	content := "Read [Beta](beta.md) and ![img](Beta.png) or https://x.com/beta today.\n"
	page := parse(t, "x.md", content)

	assert.True(t, covered(page, spanOf(t, content, "[Beta](beta.md)")))
	assert.True(t, covered(page, spanOf(t, content, "![img](Beta.png)")))
	assert.True(t, covered(page, spanOf(t, content, "https://x.com/beta")))
	assert.False(t, covered(page, spanOf(t, content, "today")))
}

func TestParser_Frontmatter(t *testing.T) {
	t.Parallel()

	content := "---\nalias: [Foo, Bar]\ntags: x\n---\nalias:: baz, [[Qux]]\n\nBody [[Foo]]\n"
	page := parse(t, "Page.md", content)

	assert.Equal(t, []string{"Foo", "Bar", "baz", "Qux"}, page.Aliases)

	var targets []string
	for _, ref := range page.References {
		targets = append(targets, ref.Target)
	}
	assert.Equal(t, []string{"Qux", "Foo"}, targets)

	head := spanOf(t, content, "---\nalias: [Foo, Bar]\ntags: x\n---\nalias:: baz, [[Qux]]\n")
	require.NotEmpty(t, page.Skip)
	assert.Equal(t, head, page.Skip[0])
	assert.False(t, covered(page, spanOf(t, content, "Body")))
}

func TestParser_FrontmatterForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "aliases string", content: "---\naliases: a, b\n---\n", want: []string{"a", "b"}},
		{name: "alias list", content: "---\nalias:\n  - \"x y\"\n  - z\n---\n", want: []string{"x y", "z"}},
		{name: "duplicates", content: "---\nalias: a\naliases: [a]\n---\n", want: []string{"a"}},
		{name: "dots close", content: "---\nalias: a\n...\n", want: []string{"a"}},
		{name: "properties only", content: "title:: T\nAlias:: p, q\n- item\n", want: []string{"p", "q"}},
		{name: "unterminated", content: "---\nalias: a\n", want: nil},
		{name: "none", content: "Just text\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parse(t, "x.md", tt.content).Aliases)
		})
	}
}

func TestParser_MalformedFrontmatter(t *testing.T) {
	t.Parallel()

	_, err := New(FlavorGFM).Parse(context.Background(), "bad.md", []byte("---\nalias: [unclosed\n---\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFrontmatter)
	assert.Contains(t, err.Error(), "bad.md")
}

func TestParser_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(FlavorGFM).Parse(ctx, "x.md", []byte("[[a]]"))
	assert.ErrorIs(t, err, context.Canceled)
}
