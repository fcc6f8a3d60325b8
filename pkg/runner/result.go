package runner

import "github.com/yaklabco/mdlinker/pkg/vault"

// FileOutcome is the parse result of one discovered file.
type FileOutcome struct {
	// Path is the absolute file path that was processed.
	Path string

	// Page is the parsed page. Nil if the file could not be read or parsed.
	Page *vault.Page

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files turned into pages.
	FilesParsed int

	// FilesErrored is the number of files that could not be read or parsed.
	FilesErrored int

	// References is the number of wikilinks and tags across all pages.
	References int

	// Aliases is the number of declared aliases across all pages.
	Aliases int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Pages returns the successfully parsed pages in path order.
func (r *Result) Pages() []*vault.Page {
	if r == nil {
		return nil
	}
	pages := make([]*vault.Page, 0, r.Stats.FilesParsed)
	for _, f := range r.Files {
		if f.Page != nil {
			pages = append(pages, f.Page)
		}
	}
	return pages
}

// Failed returns the outcomes that carry an error.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}
	var failed []FileOutcome
	for _, f := range r.Files {
		if f.Error != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// HasErrors reports whether any file failed to parse.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Page == nil {
		return
	}

	r.Stats.FilesParsed++
	r.Stats.References += len(outcome.Page.References)
	r.Stats.Aliases += len(outcome.Page.Aliases)
}
