// Package mdast maps byte offsets within a page body to lines and columns.
package mdast

// Source is a page body with its line index.
type Source struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full page body.
	Content string

	// Lines contains metadata for each line in the body.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewSource indexes the lines of content.
func NewSource(path, content string) *Source {
	return &Source{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
