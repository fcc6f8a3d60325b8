package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by finding count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeFindings includes the flat finding list.
	IncludeFindings bool

	// IncludeByPage includes the per-page analysis.
	IncludeByPage bool

	// IncludeByKind includes the per-kind analysis.
	IncludeByKind bool

	// SortBy specifies how to sort ByPage and ByKind.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeFindings: true,
		IncludeByPage:   true,
		IncludeByKind:   true,
		SortBy:          SortByCount,
		SortDesc:        true,
	}
}
