package analysis

import (
	"time"

	"github.com/yaklabco/mdlinker/pkg/mdast"
)

// Report contains pre-computed views of an engine run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Findings is the flat list for detailed output, in report order.
	Findings []FindingEntry `json:"findings,omitempty"`

	// Failures lists pages that could not be analysed.
	Failures []FailureEntry `json:"failures,omitempty"`

	// ByPage groups findings by the page they are reported on.
	ByPage []PageAnalysis `json:"byPage,omitempty"`

	// ByKind groups findings by kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FindingEntry is a finding flattened for output.
type FindingEntry struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Page    string `json:"page"`
	Path    string `json:"path"`
	Message string `json:"message"`

	// Offset is the byte offset in the page body; Start and End are zero
	// for findings not tied to body text.
	Offset int            `json:"offset"`
	Start  mdast.Position `json:"start"`
	End    mdast.Position `json:"end"`

	// Text is the body text the finding covers, if any.
	Text string `json:"text,omitempty"`

	// Line is the full source line holding Start, for context display.
	Line string `json:"-"`

	// Related are the other pages involved: the similar page, the other
	// alias owners, the unresolved target or the page a mention names.
	Related []string `json:"related,omitempty"`

	// Score is the similarity score for similar_files and fuzzy mentions.
	Score int `json:"score,omitempty"`
}

// HasPosition reports whether the entry points into page text.
func (e FindingEntry) HasPosition() bool {
	return e.Start.IsValid()
}

// FailureEntry is a page that was skipped.
type FailureEntry struct {
	Page  string `json:"page"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Pages             int           `json:"pages"`
	PagesWithFindings int           `json:"pagesWithFindings"`
	Findings          int           `json:"totalFindings"`
	Suppressed        int           `json:"suppressed"`
	Failures          int           `json:"failures"`
	References        int           `json:"references"`
	Aliases           int           `json:"aliases"`
	Grams             int           `json:"grams"`
	Duration          time.Duration `json:"durationNs"`
}

// HasFindings returns true if any finding remains.
func (t Totals) HasFindings() bool {
	return t.Findings > 0
}

// HasFailures returns true if any page was skipped.
func (t Totals) HasFailures() bool {
	return t.Failures > 0
}

// PageAnalysis contains aggregated data for a single page.
type PageAnalysis struct {
	Page     string   `json:"page"`
	Path     string   `json:"path"`
	Findings int      `json:"findings"`
	Kinds    []string `json:"kinds,omitempty"`
}

// KindAnalysis contains aggregated data for a single finding kind.
type KindAnalysis struct {
	Kind     string   `json:"kind"`
	Title    string   `json:"title"`
	Findings int      `json:"findings"`
	Pages    []string `json:"pages,omitempty"`
}
