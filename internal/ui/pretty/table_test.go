package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/analysis"
	"github.com/yaklabco/mdlinker/pkg/mdast"
)

func tableEntries() []analysis.FindingEntry {
	return []analysis.FindingEntry{
		{Kind: "similar_files", Path: "Alpha.md", Message: "similar"},
		{Kind: "broken_wikilink", Path: "Alpha.md", Message: "broken", Start: mdast.Position{Line: 2, Column: 3}},
		{Kind: "unlinked_text", Path: "Beta.md", Message: "unlinked", Start: mdast.Position{Line: 1, Column: 1}},
	}
}

func TestFormatTable_GroupsByFile(t *testing.T) {
	formatter := NewTableFormatter(NewStyles(false), false, 0)

	out := formatter.FormatTable(tableEntries())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "PAGE")
	assert.Contains(t, lines[0], "KIND")
	assert.True(t, strings.HasPrefix(lines[1], "===="))
	assert.Contains(t, lines[2], "Alpha.md")
	assert.Contains(t, lines[2], " -  ")
	assert.Contains(t, lines[3], "2:3")
	assert.True(t, strings.HasPrefix(lines[4], "----"))
	assert.Contains(t, lines[5], "Beta.md")
	assert.True(t, strings.HasPrefix(lines[6], "===="))
}

func TestFormatTable_Empty(t *testing.T) {
	formatter := NewTableFormatter(NewStyles(false), false, 80)
	assert.Empty(t, formatter.FormatTable(nil))
}

func TestCalculateColumnWidths_NarrowTerminal(t *testing.T) {
	formatter := NewTableFormatter(NewStyles(false), false, 60)

	widths := formatter.calculateColumnWidths([][]TableRow{{
		{File: strings.Repeat("f", 50), Location: "1:1", Message: strings.Repeat("m", 80), Kind: "unlinked_text"},
	}})

	assert.Equal(t, minMessageWidth, widths.message)
	assert.Equal(t, minFileWidth, widths.file)
}

func TestFormatTableSummary(t *testing.T) {
	formatter := NewTableFormatter(NewStyles(false), false, 80)

	out := formatter.FormatTableSummary(
		analysis.Totals{Pages: 4, Suppressed: 1},
		[]analysis.KindAnalysis{{Kind: "broken_wikilink", Findings: 2}},
		"12ms",
	)

	assert.Equal(t, " 4 pages checked | 2 broken_wikilink | 1 suppressed | 12ms", out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdef", truncateString("abcdef", 6))
	assert.Equal(t, "ab...", truncateString("abcdef", 5))
	assert.Equal(t, "abc", truncateString("abcdef", 3))
	assert.Equal(t, "...ef.md", truncateFilePath("abcdef.md", 8))
}
