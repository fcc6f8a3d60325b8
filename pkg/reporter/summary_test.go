package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/analysis"
)

func summaryReport() *analysis.Report {
	return &analysis.Report{
		ByKind: []analysis.KindAnalysis{
			{Kind: "broken_wikilink", Title: "Broken wikilink", Findings: 5, Pages: []string{"A", "B"}},
			{Kind: "unlinked_text", Title: "Unlinked text", Findings: 2, Pages: []string{"A"}},
		},
		ByPage: []analysis.PageAnalysis{
			{Page: "A", Path: "notes/A.md", Findings: 6},
			{Page: "B", Path: "notes/B.md", Findings: 1},
		},
		Totals: analysis.Totals{Pages: 4, Findings: 7, PagesWithFindings: 2, Suppressed: 3},
	}
}

func TestSummaryRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})

	require.NoError(t, renderer.Render(context.Background(), &analysis.Report{}))
	assert.Contains(t, buf.String(), "No findings")
}

func TestSummaryRenderer_ShowsTables(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})

	require.NoError(t, renderer.Render(context.Background(), summaryReport()))

	output := buf.String()
	assert.Contains(t, output, "Kinds Summary")
	assert.Contains(t, output, "broken_wikilink")
	assert.Contains(t, output, "Pages Summary")
	assert.Contains(t, output, "notes/A.md")
	assert.Less(t, strings.Index(output, "Kinds Summary"), strings.Index(output, "Pages Summary"))
}

func TestSummaryRenderer_PagesFirstOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never", SummaryOrder: SummaryOrderPages})

	require.NoError(t, renderer.Render(context.Background(), summaryReport()))

	output := buf.String()
	assert.Greater(t, strings.Index(output, "Kinds Summary"), strings.Index(output, "Pages Summary"))
}

func TestSummaryRenderer_ShowsTotals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})

	require.NoError(t, renderer.Render(context.Background(), summaryReport()))

	assert.Contains(t, buf.String(), "Total: 7 findings in 2 pages (3 suppressed)")
}

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "  ab", padLeft("ab", 4))
	assert.Equal(t, "abcdef", padLeft("abcdef", 4))
}
