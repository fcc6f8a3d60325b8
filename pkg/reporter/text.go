package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdlinker/internal/ui/pretty"
	"github.com/yaklabco/mdlinker/pkg/analysis"
)

// TextRenderer formats reports as styled terminal output.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report.Totals.Pages == 0 && len(report.Findings) == 0 && len(report.Failures) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No pages to check."))
		}
		return nil
	}

	for i := range report.Failures {
		fmt.Fprint(bw, r.styles.FormatFailure(&report.Failures[i]))
	}
	if len(report.Failures) > 0 {
		fmt.Fprintln(bw)
	}

	if r.opts.GroupByFile {
		r.renderGrouped(bw, report.Findings)
	} else {
		r.renderFlat(bw, report.Findings)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}

	return nil
}

// renderGrouped writes findings grouped by page file. Files appear in the
// order of their first finding, and findings keep report order within a file.
func (r *TextRenderer) renderGrouped(bw *bufio.Writer, findings []analysis.FindingEntry) {
	var order []string
	groups := make(map[string][]int)
	for i := range findings {
		path := findings[i].Path
		if _, ok := groups[path]; !ok {
			order = append(order, path)
		}
		groups[path] = append(groups[path], i)
	}

	for _, path := range order {
		fmt.Fprintln(bw, r.styles.FormatPageHeader(path, len(groups[path])))
		for _, i := range groups[path] {
			entry := &findings[i]
			fmt.Fprint(bw, r.styles.FormatFinding(entry, r.opts.ShowContext, entry.Line))
		}
		fmt.Fprintln(bw)
	}
}

// renderFlat writes findings in report order.
func (r *TextRenderer) renderFlat(bw *bufio.Writer, findings []analysis.FindingEntry) {
	for i := range findings {
		entry := &findings[i]
		fmt.Fprint(bw, r.styles.FormatFinding(entry, r.opts.ShowContext, entry.Line))
	}
}
