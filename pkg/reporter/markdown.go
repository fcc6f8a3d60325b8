package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/yaklabco/mdlinker/pkg/analysis"
)

// maxCellLength bounds table cells so rows stay readable.
const maxCellLength = 80

// MarkdownRenderer formats reports as a markdown document, suitable for
// pull request comments or a note inside the vault itself.
type MarkdownRenderer struct {
	opts Options
}

// NewMarkdownRenderer creates a new markdown renderer.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{opts: opts}
}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(_ context.Context, report *analysis.Report) error {
	md := markdown.NewMarkdown(r.opts.Writer)

	md.H1("Vault Lint Report")
	md.PlainText("")

	r.writeSummary(md, report)
	r.writeFindings(md, report)
	r.writeFailures(md, report)

	if err := md.Build(); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func (r *MarkdownRenderer) writeSummary(md *markdown.Markdown, report *analysis.Report) {
	md.H2("Summary")
	md.PlainText("")

	rows := [][]string{
		{"Pages checked", strconv.Itoa(report.Totals.Pages)},
		{"Pages with findings", strconv.Itoa(report.Totals.PagesWithFindings)},
	}
	for _, kind := range report.ByKind {
		rows = append(rows, []string{kind.Title, strconv.Itoa(kind.Findings)})
	}
	rows = append(rows,
		[]string{"Suppressed", strconv.Itoa(report.Totals.Suppressed)},
		[]string{"**Total**", "**" + strconv.Itoa(report.Totals.Findings) + "**"},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(report.ByKind) > 1 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Findings by kind"),
			piechart.WithShowData(true),
		)
		for _, kind := range report.ByKind {
			chart.LabelAndIntValue(kind.Title, uint64(kind.Findings)) //nolint:gosec // counts are never negative
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case report.Totals.Failures > 0:
		md.Cautionf("%d page(s) could not be checked.", report.Totals.Failures)
	case report.Totals.HasFindings():
		md.Warningf("%d finding(s) in %d page(s).", report.Totals.Findings, report.Totals.PagesWithFindings)
	default:
		md.Tip("No findings. The vault is clean.")
	}
	md.PlainText("")
}

func (r *MarkdownRenderer) writeFindings(md *markdown.Markdown, report *analysis.Report) {
	if len(report.Findings) == 0 {
		return
	}

	md.H2("Findings")
	md.PlainText("")

	for _, kind := range report.ByKind {
		var rows [][]string
		for _, entry := range report.Findings {
			if entry.Kind != kind.Kind {
				continue
			}
			rows = append(rows, []string{
				"`" + entry.Path + "`",
				markdownLocation(&entry),
				markdownCell(entry.Message),
			})
		}

		md.H3(kind.Title)
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Page", "Location", "Message"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func (r *MarkdownRenderer) writeFailures(md *markdown.Markdown, report *analysis.Report) {
	if len(report.Failures) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")

	items := make([]string, 0, len(report.Failures))
	for _, failure := range report.Failures {
		items = append(items, fmt.Sprintf("`%s`: %s", failure.Path, failure.Error))
	}
	md.BulletList(items...)
	md.PlainText("")
}

func markdownLocation(entry *analysis.FindingEntry) string {
	if !entry.HasPosition() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", entry.Start.Line, entry.Start.Column)
}

// markdownCell truncates long text to maxCellLength runes and escapes pipes.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) > maxCellLength {
		s = string([]rune(s)[:maxCellLength-3]) + "..."
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
