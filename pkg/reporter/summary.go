package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlinker/internal/ui/pretty"
	"github.com/yaklabco/mdlinker/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	kindColWidth      = 30 // Width of the kind column.
	fileColWidth      = 60 // Width of the file path column.
	numColWidth       = 8  // Width of numeric columns.
	maxFilePathLength = 58 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats reports as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for i := range report.Failures {
		fmt.Fprint(r.out, r.styles.FormatFailure(&report.Failures[i]))
	}

	if !report.Totals.HasFindings() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No findings"))
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderPages {
		r.renderPageTable(report.ByPage)
		fmt.Fprintln(r.out)
		r.renderKindTable(report.ByKind)
	} else {
		r.renderKindTable(report.ByKind)
		fmt.Fprintln(r.out)
		r.renderPageTable(report.ByPage)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderKindTable(kinds []analysis.KindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Kinds Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Pages", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, kind := range kinds {
		fmt.Fprintf(r.out, "%s %s %s\n",
			r.styles.KindStyle(kind.Kind).Render(padRight(kind.Kind, kindColWidth)),
			padLeft(strconv.Itoa(kind.Findings), numColWidth),
			padLeft(strconv.Itoa(len(kind.Pages)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderPageTable(pages []analysis.PageAnalysis) {
	if len(pages) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Pages Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(padRight("Page", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, page := range pages {
		path := page.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		fmt.Fprintf(r.out, "%s %s\n",
			padRight(path, fileColWidth),
			padLeft(strconv.Itoa(page.Findings), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	findingWord := "findings"
	if totals.Findings == 1 {
		findingWord = "finding"
	}
	pageWord := "pages"
	if totals.PagesWithFindings == 1 {
		pageWord = "page"
	}

	line := fmt.Sprintf("%d %s in %d %s", totals.Findings, findingWord, totals.PagesWithFindings, pageWord)
	if totals.Suppressed > 0 {
		line += r.styles.Dim.Render(fmt.Sprintf(" (%d suppressed)", totals.Suppressed))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
