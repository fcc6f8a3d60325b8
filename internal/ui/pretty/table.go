package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdlinker/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // PAGE, LOC, MESSAGE, KIND
	minFileWidth     = 20
	minLocWidth      = 6
	minMessageWidth  = 35
	minKindWidth     = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the findings table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Kind     string
}

// TableFormatter formats findings as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats findings as a table, one row group per page.
func (t *TableFormatter) FormatTable(findings []analysis.FindingEntry) string {
	groups := collectRows(findings)
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// collectRows groups consecutive findings of the same file.
func collectRows(findings []analysis.FindingEntry) [][]TableRow {
	var groups [][]TableRow
	var current []TableRow

	for i := range findings {
		row := FindingToTableRow(&findings[i])
		if len(current) > 0 && current[0].File != row.File {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

type columnWidths struct {
	file    int
	loc     int
	message int
	kind    int
}

// calculateColumnWidths determines column widths from content and terminal width.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		loc:     minLocWidth,
		message: minMessageWidth,
		kind:    minKindWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, len(row.File))
			widths.loc = max(widths.loc, len(row.Location))
			widths.message = max(widths.message, len(row.Message))
			widths.kind = max(widths.kind, len(row.Kind))
		}
	}

	// Reduce message width first, then the file column.
	if total := widths.total(); total > t.termWidth {
		widths.message = max(minMessageWidth, widths.message-(total-t.termWidth))
		if total = widths.total(); total > t.termWidth {
			widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
		}
	}

	return widths
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.message + w.kind + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.file, "PAGE",
		widths.loc, "LOC",
		widths.message, "MESSAGE",
		widths.kind, "KIND",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

// formatRow formats a single row, colored by kind.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.loc, truncateString(row.Location, widths.loc),
		widths.message, truncateString(row.Message, widths.message),
		widths.kind, truncateString(row.Kind, widths.kind),
	)
	return t.styles.KindStyle(row.Kind).Render(content)
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return ""
	}

	samples := make([]string, 0, tableColumnCount)
	for _, kind := range []string{"similar_files", "duplicate_alias", "broken_wikilink", "unlinked_text"} {
		samples = append(samples, t.styles.KindStyle(kind).Render(" "+kind+" "))
	}
	return t.styles.TableLegend.Render(" Legend: " + strings.Join(samples, " "))
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(totals analysis.Totals, kinds []analysis.KindAnalysis, duration string) string {
	parts := []string{fmt.Sprintf("%d pages checked", totals.Pages)}

	for _, kind := range kinds {
		parts = append(parts, t.styles.KindStyle(kind.Kind).Render(fmt.Sprintf("%d %s", kind.Findings, kind.Kind)))
	}

	if totals.Suppressed > 0 {
		parts = append(parts, t.styles.Dim.Render(fmt.Sprintf("%d suppressed", totals.Suppressed)))
	}

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

// FindingToTableRow converts a finding entry to a table row.
func FindingToTableRow(entry *analysis.FindingEntry) TableRow {
	loc := "-"
	if entry.HasPosition() {
		loc = fmt.Sprintf("%d:%d", entry.Start.Line, entry.Start.Column)
	}
	return TableRow{
		File:     entry.Path,
		Location: loc,
		Message:  entry.Message,
		Kind:     entry.Kind,
	}
}
