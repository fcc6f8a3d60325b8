package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlinker/internal/ui/pretty"
	"github.com/yaklabco/mdlinker/pkg/analysis"
	"github.com/yaklabco/mdlinker/pkg/mdast"
)

func brokenEntry() *analysis.FindingEntry {
	return &analysis.FindingEntry{
		Kind:    "broken_wikilink",
		ID:      "broken_wikilink:Alpha:Gamma",
		Page:    "Alpha",
		Path:    "notes/Alpha.md",
		Message: `link target "Gamma" does not match any page or alias`,
		Start:   mdast.Position{Line: 3, Column: 5},
		End:     mdast.Position{Line: 3, Column: 14},
	}
}

func TestFormatFinding_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatFinding(brokenEntry(), false, "")

	assert.Contains(t, result, "notes/Alpha.md:3:5")
	assert.Contains(t, result, "broken wikilink")
	assert.Contains(t, result, `link target "Gamma"`)
	assert.Contains(t, result, "(broken_wikilink:Alpha:Gamma)")
}

func TestFormatFinding_WithContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatFinding(brokenEntry(), true, "see [[Gamma]] now")

	assert.Contains(t, result, "see [[Gamma]] now")
	assert.Contains(t, result, "            ^~~~~~~~\n")
}

func TestFormatFinding_PageLevel(t *testing.T) {
	styles := pretty.NewStyles(false)

	entry := &analysis.FindingEntry{
		Kind:    "duplicate_alias",
		ID:      "duplicate_alias:ab",
		Path:    "Alpha.md",
		Message: "alias claimed twice",
		Related: []string{"Beta", "Gamma"},
	}
	result := styles.FormatFinding(entry, true, "ignored")

	assert.Contains(t, result, "  Alpha.md  duplicate alias")
	assert.NotContains(t, result, "ignored")
	assert.Contains(t, result, "Also claimed by: Beta, Gamma")
}

func TestFormatSourceContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		column int
		width  int
		caret  string
	}{
		{name: "single", column: 1, width: 1, caret: "        ^\n"},
		{name: "wide", column: 3, width: 3, caret: "          ^~~\n"},
		{name: "clamped to line", column: 4, width: 40, caret: "           ^~\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := styles.FormatSourceContext("abcde", tt.column, tt.width)
			lines := strings.SplitAfter(result, "\n")
			assert.Equal(t, "        abcde\n", lines[0])
			assert.Equal(t, tt.caret, lines[1])
		})
	}
}

func TestFormatSourceContext_ZeroColumn(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSourceContext("test line", 0, 1)

	assert.Contains(t, result, "test line")
	assert.NotContains(t, result, "^")
}

func TestFormatPageHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "docs/a.md (5 findings)", styles.FormatPageHeader("docs/a.md", 5))
	assert.Equal(t, "docs/a.md (1 finding)", styles.FormatPageHeader("docs/a.md", 1))
	assert.Equal(t, "docs/a.md", styles.FormatPageHeader("docs/a.md", 0))
}

func TestFormatFailure(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatFailure(&analysis.FailureEntry{Path: "bad.md", Error: "boom"})

	assert.Equal(t, "bad.md: error: boom\n", result)
}
