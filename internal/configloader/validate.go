package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/mdlinker/pkg/config"
	"github.com/yaklabco/mdlinker/pkg/lint"
	"github.com/yaklabco/mdlinker/pkg/ngram"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.similar_files").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown kinds).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[string]bool{
	"commonmark": true,
	"gfm":        true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:     true,
	config.FormatTable:    true,
	config.FormatJSON:     true,
	config.FormatSARIF:    true,
	config.FormatMarkdown: true,
	config.FormatSummary:  true,
}

// Validate checks a configuration for errors and warnings.
// Every pattern is compiled here so a malformed one is reported before any page is read.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, table, json, sarif, markdown, summary", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.NgramSize < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "ngram_size",
			Value:   cfg.NgramSize,
			Message: "ngram_size must be at least 1",
		})
	}

	validatePatterns(cfg, result)
	validateRules(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateExclude(cfg, result)

	return result
}

func validatePatterns(cfg *config.Config, result *ValidationResult) {
	if _, err := ngram.NewSplitter(cfg.FilenameSpacingPattern, ""); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "filename_spacing_pattern",
			Value:   cfg.FilenameSpacingPattern,
			Message: err.Error(),
		})
	}
	if _, err := ngram.NewSplitter("", cfg.BoundaryPattern); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "boundary_pattern",
			Value:   cfg.BoundaryPattern,
			Message: err.Error(),
		})
	}
}

// validateRules warns about rule keys that name no finding kind.
func validateRules(cfg *config.Config, result *ValidationResult) {
	for name := range cfg.Rules {
		if _, err := lint.ParseKind(name); err != nil {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + name,
				Value:   name,
				Message: fmt.Sprintf("unknown finding kind %q; it will be ignored", name),
			})
		}
	}

	for _, name := range append(append([]string{}, cfg.EnableRules...), cfg.DisableRules...) {
		if _, err := lint.ParseKind(name); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "rules",
				Value:   name,
				Message: err.Error(),
			})
		}
	}
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: "invalid glob pattern",
			})
		}
	}
}

func validateExclude(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Exclude {
		if _, err := lint.NewExcluder([]string{pattern}); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Value:   pattern,
				Message: err.Error(),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f string) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
