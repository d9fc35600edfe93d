package search

import "fmt"

// Match represents a single line that satisfied the query.
// It records the file the line came from, the 1-based position of the
// line within that file, and the line's text with any trailing carriage
// return stripped (the newline itself is never included).
// A Match is never mutated after the per-file scan creates it.
type Match struct {
	Path       string // path exactly as given by the file enumerator
	LineNumber int    // 1-based line number within the file
	Line       string // line content, trailing "\r" stripped
}

// String renders the match in the conventional grep output form
// "path:line_number:line".
func (m Match) String() string {
	return fmt.Sprintf("%s:%d:%s", m.Path, m.LineNumber, m.Line)
}
