package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlinker/internal/ui/pretty"
	"github.com/yaklabco/mdlinker/pkg/analysis"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	totals := analysis.Totals{
		Pages:             10,
		PagesWithFindings: 3,
		Findings:          15,
		Suppressed:        2,
	}
	kinds := []analysis.KindAnalysis{
		{Kind: "broken_wikilink", Title: "Broken wikilink", Findings: 10},
		{Kind: "unlinked_text", Title: "Unlinked text", Findings: 5},
	}

	result := styles.FormatSummary(totals, kinds)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Pages checked:      10")
	assert.Contains(t, result, "Pages with findings: 3")
	assert.Contains(t, result, "Total findings:     15")
	assert.Contains(t, result, "Broken wikilink:  10")
	assert.Contains(t, result, "Unlinked text:    5")
	assert.Contains(t, result, "Suppressed:         2")
	assert.Contains(t, result, "Vault has findings")
	assert.NotContains(t, result, "Pages failed")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(analysis.Totals{Pages: 5}, nil)

	assert.Contains(t, result, "Vault is clean")
	assert.NotContains(t, result, "Pages with findings:")
}

func TestFormatSummary_Failures(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(analysis.Totals{Pages: 5, Failures: 1}, nil)

	assert.Contains(t, result, "Pages failed:       1")
	assert.Contains(t, result, "Some pages could not be checked")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		totals analysis.Totals
		want   string
	}{
		{
			name:   "clean",
			totals: analysis.Totals{Pages: 4},
			want:   "No findings (4 pages checked)\n",
		},
		{
			name:   "single",
			totals: analysis.Totals{Pages: 1, Findings: 1, PagesWithFindings: 1},
			want:   "1 finding in 1 page\n",
		},
		{
			name:   "suppressed and failed",
			totals: analysis.Totals{Pages: 9, Findings: 12, PagesWithFindings: 3, Suppressed: 2, Failures: 1},
			want:   "12 findings in 3 pages, 2 suppressed, 1 page failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.totals))
		})
	}
}
