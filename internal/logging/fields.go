// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldPage       = "page"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig    = "config"
	FieldFlavor    = "flavor"
	FieldJobs      = "jobs"
	FieldFormat    = "format"
	FieldThreshold = "threshold"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesErrored    = "files_errored"
	FieldPages           = "pages"
	FieldReferences      = "references"
	FieldAliases         = "aliases"
	FieldGrams           = "grams"
	FieldFindings        = "findings"
	FieldSuppressed      = "suppressed"
	FieldFailures        = "failures"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Kind fields.
	FieldKind        = "kind"
	FieldName        = "name"
	FieldEnabled     = "enabled"
	FieldDescription = "description"
)
