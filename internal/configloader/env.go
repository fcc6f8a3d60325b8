package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlinker/pkg/config"
)

// envVarPrefix is the prefix for all mdlinker environment variables.
const envVarPrefix = "MDLINKER_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":                   {field: "flavor", typ: envTypeString, help: "Markdown flavor: commonmark or gfm"},
	"FORMAT":                   {field: "format", typ: envTypeString, help: "Output format: text, table, json, sarif, markdown, or summary"},
	"JOBS":                     {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"NGRAM_SIZE":               {field: "ngram_size", typ: envTypeInt, help: "Widest n-gram built from a page name"},
	"BOUNDARY_PATTERN":         {field: "boundary_pattern", typ: envTypeString, help: "Regex of hard breaks n-grams never cross"},
	"FILENAME_SPACING_PATTERN": {field: "filename_spacing_pattern", typ: envTypeString, help: "Regex splitting page names into words"},
	"FILENAME_MATCH_THRESHOLD": {field: "filename_match_threshold", typ: envTypeInt, help: "Minimum reported similarity score"},
	"CASE_SENSITIVE":           {field: "case_sensitive", typ: envTypeBool, help: "Keep case during normalization: true or false"},
	"FUZZY_MENTIONS":           {field: "fuzzy_mentions", typ: envTypeBool, help: "Fuzzy match unlinked mentions: true or false"},
	"SKIP_HIERARCHY_GROUPS":    {field: "skip_hierarchy_groups", typ: envTypeBool, help: "Exempt hierarchy children from similarity: true or false"},
	"PATHS":                    {field: "paths", typ: envTypeSlice, help: "Comma-separated list of vault directories"},
	"IGNORE":                   {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of file ignore globs"},
	"EXCLUDE":                  {field: "exclude", typ: envTypeSlice, help: "Comma-separated list of finding id globs to suppress"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDLINKER_ (e.g., MDLINKER_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "boundary_pattern":
		cfg.BoundaryPattern = value
	case "filename_spacing_pattern":
		cfg.FilenameSpacingPattern = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "case_sensitive":
		cfg.CaseSensitive = config.Bool(value)
	case "fuzzy_mentions":
		cfg.FuzzyMentions = config.Bool(value)
	case "skip_hierarchy_groups":
		cfg.SkipHierarchyGroups = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "ngram_size":
		cfg.NgramSize = value
	case "filename_match_threshold":
		cfg.FilenameMatchThreshold = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "paths":
		cfg.Paths = value
	case "ignore":
		cfg.Ignore = value
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.help
	}
	return out
}
