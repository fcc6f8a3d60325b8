package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdlinker/pkg/analysis"
)

// FormatFinding formats a single finding for terminal output.
func (s *Styles) FormatFinding(entry *analysis.FindingEntry, showContext bool, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col, or just the path for page-level findings.
	location := s.FilePath.Render(entry.Path)
	if entry.HasPosition() {
		location = fmt.Sprintf("%s:%d:%d", location, entry.Start.Line, entry.Start.Column)
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatKind(entry.Kind),
		s.Message.Render(entry.Message),
		s.KindID.Render("("+entry.ID+")"),
	))

	if showContext && sourceLine != "" && entry.HasPosition() {
		width := 1
		if entry.End.Line == entry.Start.Line {
			width = max(entry.End.Column-entry.Start.Column, 1)
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, entry.Start.Column, width))
	}

	if len(entry.Related) > 0 && entry.Kind == "duplicate_alias" {
		builder.WriteString("    " + s.Dim.Render("Also claimed by:") + " " +
			s.Related.Render(strings.Join(entry.Related, ", ")) + "\n")
	}

	return builder.String()
}

// FormatKind returns a styled kind label.
func (s *Styles) FormatKind(kind string) string {
	return s.KindStyle(kind).Render(strings.ReplaceAll(kind, "_", " "))
}

// FormatSourceContext formats the source line with a marker under width
// characters starting at column.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		width = min(max(width, 1), max(utf8.RuneCountInString(line)-column+1, 1))
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^"+strings.Repeat("~", width-1)) + "\n")
	}

	return builder.String()
}

// FormatPageHeader formats a page header for grouped output.
func (s *Styles) FormatPageHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	switch {
	case count == 1:
		header += s.Dim.Render(" (1 finding)")
	case count > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d findings)", count))
	}
	return header
}

// FormatFailure formats a page that could not be analysed.
func (s *Styles) FormatFailure(entry *analysis.FailureEntry) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(entry.Path),
		s.Error.Render("error: "+entry.Error),
	)
}
