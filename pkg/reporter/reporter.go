// Package reporter renders engine reports in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdlinker/pkg/analysis"
	"github.com/yaklabco/mdlinker/pkg/lint"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes engine reports.
type Reporter interface {
	// Report writes formatted output for the given report. corpus supplies
	// page bodies for line and column positions and may be nil.
	// It returns the number of findings reported and any write errors.
	Report(ctx context.Context, report *lint.Report, corpus *vault.Corpus) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the report and rendering it.
func (f *reporterFacade) Report(ctx context.Context, report *lint.Report, corpus *vault.Corpus) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	analysed := analysis.Analyze(report, corpus, f.analysisOpts)
	if err := f.renderer.Render(ctx, analysed); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return analysed.Totals.Findings, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer) *reporterFacade {
	return &reporterFacade{
		renderer:     renderer,
		analysisOpts: analysis.DefaultOptions(),
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = defaults.ToolVersion
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	var renderer Renderer
	switch format {
	case FormatText:
		renderer = NewTextRenderer(opts)
	case FormatTable:
		renderer = NewTableRenderer(opts)
	case FormatJSON:
		renderer = NewJSONRenderer(opts)
	case FormatSARIF:
		renderer = NewSARIFRenderer(opts)
	case FormatMarkdown:
		renderer = NewMarkdownRenderer(opts)
	case FormatSummary:
		renderer = NewSummaryRenderer(opts)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return newRendererFacade(renderer), nil
}
