package goldmark

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindReference is the node kind of wikilinks and tags.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once per process
var KindReference = ast.NewNodeKind("Reference")

// Reference is an inline node for [[target]], [[target|label]], #tag and #[[tag]].
type Reference struct {
	ast.BaseInline

	// Target is the page part of the reference, without heading or label.
	Target string

	// Tag is set for the #tag forms.
	Tag bool

	// Start and End are absolute byte offsets of the whole construct.
	Start int
	End   int
}

// Kind implements ast.Node.
func (n *Reference) Kind() ast.NodeKind {
	return KindReference
}

// Dump implements ast.Node.
func (n *Reference) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Target": n.Target,
	}, nil)
}

var (
	openLink  = []byte("[[")
	closeLink = []byte("]]")
)

// referenceParser recognises wikilinks and tags.
type referenceParser struct{}

func (p *referenceParser) Trigger() []byte {
	return []byte{'[', '#'}
}

func (p *referenceParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if len(line) == 0 {
		return nil
	}

	var node *Reference
	if line[0] == '#' {
		node = parseTag(line, block.PrecendingCharacter())
	} else {
		node = parseWikilink(line, 0)
	}
	if node == nil {
		return nil
	}

	width := node.End
	node.Start += seg.Start
	node.End += seg.Start
	block.Advance(width)
	return node
}

// parseWikilink parses [[...]] at line[at:]. Offsets in the result are
// relative to line.
func parseWikilink(line []byte, at int) *Reference {
	rest := line[at:]
	if !bytes.HasPrefix(rest, openLink) {
		return nil
	}
	inner := rest[len(openLink):]
	end := bytes.Index(inner, closeLink)
	if end < 0 {
		return nil
	}
	inner = inner[:end]
	if bytes.ContainsAny(inner, "[\n") {
		return nil
	}

	target := linkTarget(inner)
	if target == "" {
		return nil
	}
	return &Reference{
		Target: target,
		Start:  at,
		End:    at + len(openLink) + end + len(closeLink),
	}
}

// linkTarget strips the display label and heading from the inside of a wikilink.
func linkTarget(inner []byte) string {
	if i := bytes.IndexByte(inner, '|'); i >= 0 {
		inner = inner[:i]
	}
	if i := bytes.IndexByte(inner, '#'); i >= 0 {
		inner = inner[:i]
	}
	return string(bytes.TrimSpace(inner))
}

func parseTag(line []byte, prev rune) *Reference {
	if isTagRune(prev) || prev == '#' || prev == '&' || prev == '/' {
		return nil
	}

	if node := parseWikilink(line, 1); node != nil {
		node.Start = 0
		node.Tag = true
		return node
	}

	n := 1
	for n < len(line) {
		r, size := utf8.DecodeRune(line[n:])
		if !isTagRune(r) {
			break
		}
		n += size
	}
	if n == 1 {
		return nil
	}
	return &Reference{Target: string(line[1:n]), Tag: true, Start: 0, End: n}
}

func isTagRune(r rune) bool {
	switch r {
	case '-', '_', '/':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// references is a goldmark extension adding the Reference inline.
type references struct{}

func (references) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		// Ahead of the standard link parser at 200.
		util.Prioritized(&referenceParser{}, 199),
	))
}

// Wikilinks is the goldmark extension for wikilinks and tags.
//
//nolint:gochecknoglobals // stateless extension value, like goldmark's own extension.GFM
var Wikilinks goldmark.Extender = references{}
