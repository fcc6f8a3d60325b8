package configloader

import "github.com/yaklabco/mdlinker/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Boolean pointers: override overwrites base if non-nil, so a file can set false
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.NgramSize != 0 {
		result.NgramSize = override.NgramSize
	}
	if override.BoundaryPattern != "" {
		result.BoundaryPattern = override.BoundaryPattern
	}
	if override.FilenameSpacingPattern != "" {
		result.FilenameSpacingPattern = override.FilenameSpacingPattern
	}
	if override.FilenameMatchThreshold != 0 {
		result.FilenameMatchThreshold = override.FilenameMatchThreshold
	}

	if override.CaseSensitive != nil {
		result.CaseSensitive = override.CaseSensitive
	}
	if override.FuzzyMentions != nil {
		result.FuzzyMentions = override.FuzzyMentions
	}
	if override.SkipHierarchyGroups != nil {
		result.SkipHierarchyGroups = override.SkipHierarchyGroups
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Paths != nil {
		result.Paths = override.Paths
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}
	if override.FilenameToAlias != nil {
		result.FilenameToAlias = override.FilenameToAlias
	}
	if override.AliasToFilename != nil {
		result.AliasToFilename = override.AliasToFilename
	}
	if override.IgnoreWordPairs != nil {
		result.IgnoreWordPairs = override.IgnoreWordPairs
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	return &result
}

// mergeRules performs deep merge of per-kind configurations.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		existing, ok := result[key]
		if ok && val.Enabled == nil {
			val.Enabled = existing.Enabled
		}
		result[key] = val
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
