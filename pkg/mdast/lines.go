package mdast

import (
	"sort"
	"unicode/utf8"
)

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content string) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := range len(content) {
		if content[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line, possibly without a trailing newline.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the body.
func (s *Source) LineCount() int {
	return len(s.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts runes, so a multibyte character advances it by one.
// Returns (0, 0) if the offset is out of range.
func (s *Source) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(s.Content) || len(s.Lines) == 0 {
		return 0, 0
	}

	lineIdx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(s.Lines) {
		lineIdx = len(s.Lines) - 1
	}

	info := s.Lines[lineIdx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, utf8.RuneCountInString(s.Content[info.StartOffset:offset]) + 1
}

// Offset converts 1-based line and rune column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (s *Source) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(s.Lines) || col < 1 {
		return 0, false
	}

	info := s.Lines[line-1]
	offset := info.StartOffset
	for range col - 1 {
		if offset >= info.EndOffset {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(s.Content[offset:])
		offset += size
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns "" if the line number is out of range.
func (s *Source) LineContent(line int) string {
	if line < 1 || line > len(s.Lines) {
		return ""
	}

	info := s.Lines[line-1]
	return s.Content[info.StartOffset:info.NewlineStart]
}
