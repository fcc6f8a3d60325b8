package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdlinker/pkg/analysis"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string        `json:"version"`
	Findings []JSONFinding `json:"findings"`
	Failures []JSONFailure `json:"failures"`
	Summary  JSONSummary   `json:"summary"`
}

// JSONFinding represents a single finding.
type JSONFinding struct {
	Kind        string   `json:"kind"`
	ID          string   `json:"id"`
	Page        string   `json:"page"`
	Path        string   `json:"path"`
	Message     string   `json:"message"`
	Offset      int      `json:"offset"`
	StartLine   int      `json:"startLine,omitempty"`
	StartColumn int      `json:"startColumn,omitempty"`
	EndLine     int      `json:"endLine,omitempty"`
	EndColumn   int      `json:"endColumn,omitempty"`
	Text        string   `json:"text,omitempty"`
	Related     []string `json:"related,omitempty"`
	Score       int      `json:"score,omitempty"`
}

// JSONFailure represents a page that could not be analysed.
type JSONFailure struct {
	Page  string `json:"page"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	PagesChecked      int            `json:"pagesChecked"`
	PagesWithFindings int            `json:"pagesWithFindings"`
	PagesFailed       int            `json:"pagesFailed"`
	TotalFindings     int            `json:"totalFindings"`
	Suppressed        int            `json:"suppressed"`
	ByKind            map[string]int `json:"byKind"`
	HasErrors         bool           `json:"hasErrors"`
}

// JSONRenderer formats reports as JSON.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(buildJSONOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildJSONOutput(report *analysis.Report) *JSONOutput {
	output := &JSONOutput{
		Version:  report.Version,
		Findings: make([]JSONFinding, 0, len(report.Findings)),
		Failures: make([]JSONFailure, 0, len(report.Failures)),
		Summary: JSONSummary{
			PagesChecked:      report.Totals.Pages,
			PagesWithFindings: report.Totals.PagesWithFindings,
			PagesFailed:       report.Totals.Failures,
			TotalFindings:     report.Totals.Findings,
			Suppressed:        report.Totals.Suppressed,
			ByKind:            make(map[string]int, len(report.ByKind)),
			HasErrors:         report.Totals.HasFindings(),
		},
	}

	for _, entry := range report.Findings {
		output.Findings = append(output.Findings, JSONFinding{
			Kind:        entry.Kind,
			ID:          entry.ID,
			Page:        entry.Page,
			Path:        entry.Path,
			Message:     entry.Message,
			Offset:      entry.Offset,
			StartLine:   entry.Start.Line,
			StartColumn: entry.Start.Column,
			EndLine:     entry.End.Line,
			EndColumn:   entry.End.Column,
			Text:        entry.Text,
			Related:     entry.Related,
			Score:       entry.Score,
		})
	}

	for _, failure := range report.Failures {
		output.Failures = append(output.Failures, JSONFailure(failure))
	}

	for _, kind := range report.ByKind {
		output.Summary.ByKind[kind.Kind] = kind.Findings
	}

	return output
}
