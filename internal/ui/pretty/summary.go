package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlinker/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordPage            = "page"
	wordPages           = "pages"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run totals as a single line.
// Example: "12 findings in 3 pages, 2 suppressed, 1 page failed".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	var parts []string

	if totals.Findings == 0 {
		parts = append(parts, s.Success.Render("No findings")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", totals.Pages, plural(totals.Pages, wordPage, wordPages))))
	} else {
		parts = append(parts, fmt.Sprintf("%s in %d %s",
			s.Failure.Render(fmt.Sprintf("%d %s", totals.Findings, plural(totals.Findings, "finding", "findings"))),
			totals.PagesWithFindings,
			plural(totals.PagesWithFindings, wordPage, wordPages),
		))
	}

	if totals.Suppressed > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d suppressed", totals.Suppressed)))
	}

	if totals.Failures > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed",
			totals.Failures, plural(totals.Failures, wordPage, wordPages))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run totals and per-kind counts as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals, kinds []analysis.KindAnalysis) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Pages checked:      " +
		s.SummaryValue.Render(strconv.Itoa(totals.Pages)) + "\n")

	if totals.PagesWithFindings > 0 {
		builder.WriteString("  Pages with findings: " +
			s.Failure.Render(strconv.Itoa(totals.PagesWithFindings)) + "\n")
	}

	if totals.Failures > 0 {
		builder.WriteString("  Pages failed:       " +
			s.Error.Render(strconv.Itoa(totals.Failures)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total findings:     " +
		s.SummaryValue.Render(strconv.Itoa(totals.Findings)) + "\n")

	for _, kind := range kinds {
		label := fmt.Sprintf("    %-18s", kind.Title+":")
		builder.WriteString(label + s.KindStyle(kind.Kind).Render(strconv.Itoa(kind.Findings)) + "\n")
	}

	if totals.Suppressed > 0 {
		builder.WriteString("  Suppressed:         " +
			s.Dim.Render(strconv.Itoa(totals.Suppressed)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case totals.Failures > 0:
		builder.WriteString(s.Failure.Render("Some pages could not be checked"))
	case totals.Findings > 0:
		builder.WriteString(s.Warning.Render("Vault has findings"))
	default:
		builder.WriteString(s.Success.Render("Vault is clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}
