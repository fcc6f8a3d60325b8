package configloader

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/mdlinker/pkg/config"
)

// MigrationResult contains the result of converting a legacy config.
type MigrationResult struct {
	// Config is the converted configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original config.
	SourcePath string
}

// legacyConfig is the layout of mdlinker.toml. Substitutions there are
// sequences of find/replace sequences.
type legacyConfig struct {
	Directories            []string      `toml:"directories"`
	NgramSize              *int          `toml:"ngram_size"`
	BoundaryPattern        *string       `toml:"boundary_pattern"`
	WikilinkPattern        *string       `toml:"wikilink_pattern"`
	FilenameSpacingPattern *string       `toml:"filename_spacing_pattern"`
	FilenameMatchThreshold *int          `toml:"filename_match_threshold"`
	Exclude                []string      `toml:"exclude"`
	TitleToFilepath        [][][2]string `toml:"title_to_filepath"`
	FilepathToTitle        [][][2]string `toml:"filepath_to_title"`
}

// ConvertLegacyConfig converts a legacy mdlinker.toml to the YAML configuration.
func ConvertLegacyConfig(path string) (*MigrationResult, error) {
	if !IsTOMLConfig(path) {
		return nil, fmt.Errorf("cannot convert %q; only mdlinker.toml files are supported", path)
	}

	var legacy legacyConfig
	meta, err := toml.DecodeFile(path, &legacy)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	result := &MigrationResult{SourcePath: path}
	for _, key := range meta.Undecoded() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q ignored", key.String()))
	}

	cfg := config.NewConfig()
	if len(legacy.Directories) > 0 {
		cfg.Paths = legacy.Directories
	}
	if legacy.NgramSize != nil {
		cfg.NgramSize = *legacy.NgramSize
	}
	if legacy.BoundaryPattern != nil {
		cfg.BoundaryPattern = *legacy.BoundaryPattern
	}
	if legacy.FilenameSpacingPattern != nil {
		cfg.FilenameSpacingPattern = *legacy.FilenameSpacingPattern
	}
	if legacy.FilenameMatchThreshold != nil {
		cfg.FilenameMatchThreshold = *legacy.FilenameMatchThreshold
	}
	if len(legacy.Exclude) > 0 {
		cfg.Exclude = legacy.Exclude
	}
	if legacy.WikilinkPattern != nil {
		result.Warnings = append(result.Warnings,
			"wikilink_pattern is not supported; wikilinks and tags are read by the markdown parser")
	}

	if len(legacy.TitleToFilepath) > 0 {
		cfg.AliasToFilename = flattenPairs("title_to_filepath", legacy.TitleToFilepath, result)
	}
	if len(legacy.FilepathToTitle) > 0 {
		cfg.FilenameToAlias = flattenPairs("filepath_to_title", legacy.FilepathToTitle, result)
	}

	result.Config = cfg
	return result, nil
}

// flattenPairs joins the independent substitution sequences into one list.
// Legacy finds were regular expressions; only literal text carries over.
func flattenPairs(key string, groups [][][2]string, result *MigrationResult) []config.Pair {
	var pairs []config.Pair
	for _, group := range groups {
		for _, p := range group {
			if regexp.QuoteMeta(p[0]) != p[0] {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: pattern %q is now matched as literal text", key, p[0]))
			}
			pairs = append(pairs, config.Pair{From: p[0], To: p[1]})
		}
	}
	if len(groups) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: %d substitution sequences merged into one", key, len(groups)))
	}
	return pairs
}

// GenerateMigrationHeader generates a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# mdlinker configuration
# Migrated from: %s
# See: https://github.com/yaklabco/mdlinker

`, sourcePath)
}

// CanMigrate returns true if the config file can be automatically migrated.
func CanMigrate(path string) bool {
	if !IsTOMLConfig(path) {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// GetMigrationWarning returns a warning message for configs that can't be migrated.
func GetMigrationWarning(path string) string {
	return fmt.Sprintf("found %s; only mdlinker.toml files can be converted, please create .mdlinker.yml manually", path)
}
