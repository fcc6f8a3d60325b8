package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/mdlinker/internal/ui/pretty"
	"github.com/yaklabco/mdlinker/pkg/analysis"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableRenderer formats reports as a styled table with color-coded rows.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for i := range report.Failures {
		fmt.Fprint(bw, r.styles.FormatFailure(&report.Failures[i]))
	}

	if !report.Totals.HasFindings() {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("All pages passed!"))
			fmt.Fprintln(bw, r.styles.Dim.Render(fmt.Sprintf("%d pages checked", report.Totals.Pages)))
		}
		return nil
	}

	fmt.Fprint(bw, r.formatter.FormatTable(report.Findings))

	if r.opts.ShowSummary {
		duration := ""
		if report.Totals.Duration > 0 {
			duration = report.Totals.Duration.String()
		}
		fmt.Fprintln(bw, r.formatter.FormatTableSummary(report.Totals, report.ByKind, duration))
	}

	return nil
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
