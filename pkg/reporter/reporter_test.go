package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/pkg/lint"
	"github.com/yaklabco/mdlinker/pkg/reporter"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "markdown", input: "markdown", want: reporter.FormatMarkdown},
		{name: "markdown short", input: "md", want: reporter.FormatMarkdown},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, reporter.FormatMarkdown.IsValid())
	assert.True(t, reporter.FormatTable.IsValid())
	assert.False(t, reporter.Format("diff").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text", format: reporter.FormatText},
		{name: "table", format: reporter.FormatTable},
		{name: "json", format: reporter.FormatJSON},
		{name: "sarif", format: reporter.FormatSARIF},
		{name: "markdown", format: reporter.FormatMarkdown},
		{name: "summary", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := reporter.DefaultOptions()

	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.GroupByFile)
	assert.Equal(t, reporter.SummaryOrderKinds, opts.SummaryOrder)
}

// fixture returns a report with one finding of each kind and one failure.
func fixture(t *testing.T) (*lint.Report, *vault.Corpus) {
	t.Helper()

	corpus := vault.NewCorpus([]*vault.Page{
		{Path: "Alpha.md", Title: "Alpha", Body: "see [[Gamma]]\nBeta is here"},
		{Path: "Beta.md", Title: "Beta", Body: "body"},
	})

	report := &lint.Report{
		Findings: []lint.Finding{
			&lint.SimilarFiles{
				Pages: [2]string{"Alpha", "Beta"}, Paths: [2]string{"Alpha.md", "Beta.md"},
				Variants: [2]string{"alpha", "beta"}, Score: 150,
			},
			&lint.DuplicateAlias{Alias: "ab", Owners: []string{"Alpha", "Beta"}, Paths: []string{"Alpha.md", "Beta.md"}},
			&lint.BrokenWikilink{Source: "Alpha", SourcePath: "Alpha.md", Target: "Gamma", Span: vault.Span{Start: 4, End: 13}},
			&lint.UnlinkedText{
				Source: "Alpha", SourcePath: "Alpha.md", Span: vault.Span{Start: 14, End: 18},
				Text: "Beta", Alias: "beta", Target: "Beta", TargetPath: "Beta.md",
			},
		},
		Failures:   []lint.PageFailure{{Page: "Bad", Path: "Bad.md", Err: errors.New("span out of bounds")}},
		Suppressed: 1,
		Stats:      lint.Stats{Pages: 3},
	}
	return report, corpus
}

func render(t *testing.T, opts reporter.Options) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	rep, err := reporter.New(opts)
	require.NoError(t, err)

	report, corpus := fixture(t)
	count, err := rep.Report(context.Background(), report, corpus)
	require.NoError(t, err)
	return buf.String(), count
}

func TestReporter_FacadeReturnsFindingCount(t *testing.T) {
	for _, format := range []reporter.Format{
		reporter.FormatText, reporter.FormatTable, reporter.FormatJSON,
		reporter.FormatSARIF, reporter.FormatMarkdown, reporter.FormatSummary,
	} {
		t.Run(format.String(), func(t *testing.T) {
			_, count := render(t, reporter.Options{Format: format, Color: "never"})
			assert.Equal(t, 4, count)
		})
	}
}

func TestReporter_Cancelled(t *testing.T) {
	rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rep.Report(ctx, &lint.Report{}, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTextRenderer_Grouped(t *testing.T) {
	out, _ := render(t, reporter.Options{
		Format: reporter.FormatText, Color: "never",
		GroupByFile: true, ShowContext: true, ShowSummary: true,
	})

	assert.Contains(t, out, "Bad.md: error: span out of bounds")
	assert.Contains(t, out, "Alpha.md (4 findings)")
	assert.Contains(t, out, "Alpha.md:1:5  broken wikilink")
	assert.Contains(t, out, "Alpha.md:2:1  unlinked text")
	assert.Contains(t, out, "        see [[Gamma]]\n            ^~~~~~~~\n")
	assert.Contains(t, out, "Also claimed by: Beta")
	assert.Contains(t, out, "4 findings in 1 page, 1 suppressed, 1 page failed")
}

func TestTextRenderer_Flat(t *testing.T) {
	out, _ := render(t, reporter.Options{Format: reporter.FormatText, Color: "never"})

	assert.NotContains(t, out, "(4 findings)")
	assert.NotContains(t, out, "^")
	assert.Less(t, strings.Index(out, "similar files"), strings.Index(out, "unlinked text"))
}

func TestTextRenderer_NoPages(t *testing.T) {
	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No pages to check.\n", buf.String())
}

func TestJSONRenderer(t *testing.T) {
	out, _ := render(t, reporter.Options{Format: reporter.FormatJSON})

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	require.Len(t, parsed.Findings, 4)
	broken := parsed.Findings[2]
	assert.Equal(t, "broken_wikilink", broken.Kind)
	assert.Equal(t, "broken_wikilink:Alpha:Gamma", broken.ID)
	assert.Equal(t, 4, broken.Offset)
	assert.Equal(t, 1, broken.StartLine)
	assert.Equal(t, 5, broken.StartColumn)
	assert.Equal(t, "[[Gamma]]", broken.Text)

	require.Len(t, parsed.Failures, 1)
	assert.Equal(t, "Bad.md", parsed.Failures[0].Path)

	assert.Equal(t, 3, parsed.Summary.PagesChecked)
	assert.Equal(t, 4, parsed.Summary.TotalFindings)
	assert.Equal(t, 1, parsed.Summary.Suppressed)
	assert.Equal(t, 1, parsed.Summary.ByKind["unlinked_text"])
	assert.True(t, parsed.Summary.HasErrors)
}

func TestJSONRenderer_Compact(t *testing.T) {
	out, _ := render(t, reporter.Options{Format: reporter.FormatJSON, Compact: true})

	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestSARIFRenderer(t *testing.T) {
	out, _ := render(t, reporter.Options{Format: reporter.FormatSARIF, ToolVersion: "1.2.3"})

	var parsed reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Runs, 1)
	run := parsed.Runs[0]

	assert.Equal(t, "mdlinker", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 4)
	assert.Equal(t, "Broken wikilink", run.Tool.Driver.Rules[2].Name)
	assert.NotEqual(t, "broken_wikilink", run.Tool.Driver.Rules[2].ShortDescription.Text)

	require.Len(t, run.Results, 4)
	assert.Nil(t, run.Results[0].Locations[0].PhysicalLocation.Region)
	assert.Equal(t, "warning", run.Results[0].Level)
	assert.Equal(t, "error", run.Results[2].Level)
	require.NotNil(t, run.Results[2].Locations[0].PhysicalLocation.Region)
	assert.Equal(t, 5, run.Results[2].Locations[0].PhysicalLocation.Region.StartColumn)
	assert.Equal(t, "broken_wikilink:Alpha:Gamma", run.Results[2].PartialFingerprints["findingId/v1"])

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
}

func TestMarkdownRenderer(t *testing.T) {
	out, _ := render(t, reporter.Options{Format: reporter.FormatMarkdown})

	assert.Contains(t, out, "# Vault Lint Report")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "mermaid")
	assert.Contains(t, out, "### Broken wikilink")
	assert.Contains(t, out, "`Alpha.md`")
	assert.Contains(t, out, "## Failures")
	assert.Contains(t, out, "`Bad.md`: span out of bounds")
}

func TestTableRenderer(t *testing.T) {
	out, _ := render(t, reporter.Options{Format: reporter.FormatTable, Color: "never", ShowSummary: true})

	assert.Contains(t, out, "PAGE")
	assert.Contains(t, out, "1:5")
	assert.Contains(t, out, "3 pages checked")
}
