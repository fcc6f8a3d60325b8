// Package goldmark parses markdown pages into vault pages using goldmark.
package goldmark

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdlinker/pkg/vault"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns markdown files into vault pages.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a Page.
//
// The title comes from the file name. Aliases come from the YAML
// frontmatter ("alias" or "aliases") and from leading "alias:: a, b"
// property lines. References are wikilinks and tags outside code. Skip holds
// the metadata block, code, raw HTML and standard markdown links.
//
// Offsets in the result index into content as given.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*vault.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	meta, err := readMetadata(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	source := blank(content, meta.yamlEnd)
	doc := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	page := &vault.Page{
		Path:    path,
		Title:   vault.TitleFromPath(path),
		Aliases: meta.aliases,
		Body:    string(content),
	}
	if meta.propsEnd > 0 {
		page.Skip = append(page.Skip, vault.Span{Start: 0, End: meta.propsEnd})
	}

	c := &collector{source: source, page: page}
	if err := ast.Walk(doc, c.visit); err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}

	c.skipURLs()
	slices.SortFunc(page.Skip, func(a, b vault.Span) int { return a.Start - b.Start })
	return page, nil
}

// bareURL matches URLs written as plain text or inside angle brackets.
//
//nolint:gochecknoglobals // compiled once
var bareURL = regexp.MustCompile(`(?i)\b(?:https?|ftp|file)://[^\s<>()\[\]]+`)

// collector gathers references and skip regions from the AST.
type collector struct {
	source []byte
	page   *vault.Page
}

func (c *collector) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch node := n.(type) {
	case *Reference:
		kind := vault.ReferenceWikilink
		if node.Tag {
			kind = vault.ReferenceTag
		}
		c.page.References = append(c.page.References, vault.Reference{
			Target: node.Target,
			Span:   vault.Span{Start: node.Start, End: node.End},
			Kind:   kind,
		})
	case *ast.FencedCodeBlock:
		if node.Info != nil {
			c.skip(node.Info.Segment.Start, node.Info.Segment.Stop)
		}
		c.skipLines(node.Lines())
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock, *ast.HTMLBlock:
		c.skipLines(n.Lines())
		return ast.WalkSkipChildren, nil
	case *ast.RawHTML:
		c.skipLines(node.Segments)
	case *ast.CodeSpan:
		if start, stop, ok := textExtent(node); ok {
			c.skip(start, stop)
		}
		return ast.WalkSkipChildren, nil
	case *ast.Link, *ast.Image:
		c.skipLink(n)
		return ast.WalkSkipChildren, nil
	case *ast.AutoLink:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (c *collector) skipURLs() {
	for _, loc := range bareURL.FindAllIndex(c.source, -1) {
		c.skip(loc[0], loc[1])
	}
}

func (c *collector) skip(start, stop int) {
	if stop > start {
		c.page.Skip = append(c.page.Skip, vault.Span{Start: start, End: stop})
	}
}

func (c *collector) skipLines(lines *text.Segments) {
	if lines == nil {
		return
	}
	for i := range lines.Len() {
		seg := lines.At(i)
		c.skip(seg.Start, seg.Stop)
	}
}

// skipLink covers a standard markdown link from its label through the
// destination in parentheses or the reference label in brackets.
func (c *collector) skipLink(n ast.Node) {
	start, stop, ok := textExtent(n)
	if !ok {
		return
	}
	for start > 0 && (c.source[start-1] == '[' || c.source[start-1] == '!') {
		start--
	}
	if stop < len(c.source) && c.source[stop] == ']' {
		stop++
		if stop < len(c.source) {
			if closer := closing(c.source[stop]); closer != 0 {
				if i := indexByteFrom(c.source, stop, closer); i >= 0 {
					stop = i + 1
				}
			}
		}
	}
	c.skip(start, stop)
}

func closing(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return 0
	}
}

func indexByteFrom(b []byte, from int, c byte) int {
	for i := from; i < len(b) && b[i] != '\n'; i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// textExtent returns the smallest range covering every text segment below n.
func textExtent(n ast.Node) (int, int, bool) {
	start, stop, found := 0, 0, false
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		t, ok := child.(*ast.Text)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !found || t.Segment.Start < start {
			start = t.Segment.Start
		}
		if !found || t.Segment.Stop > stop {
			stop = t.Segment.Stop
		}
		found = true
		return ast.WalkContinue, nil
	})
	return start, stop, found
}

// blank returns a copy of content with the first n bytes replaced by spaces,
// keeping line breaks so that offsets and line numbers are unchanged.
func blank(content []byte, n int) []byte {
	out := make([]byte, len(content))
	copy(out, content)
	for i := range n {
		if out[i] != '\n' && out[i] != '\r' {
			out[i] = ' '
		}
	}
	return out
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	exts := []goldmark.Extender{Wikilinks}

	switch flavor {
	case FlavorGFM:
		// Bare URLs are covered by skipURLs rather than linkify.
		exts = append(exts, extension.Table, extension.Strikethrough, extension.TaskList)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(goldmark.WithExtensions(exts...))
}
