package search

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher decides whether a single line of text matches the query.
// Implementations hold only immutable state, so a single Matcher is
// shared read-only by every worker of a search run.
type Matcher interface {
	// MatchLine reports whether line satisfies the query.
	MatchLine(line string) bool
}

// SpanFinder is implemented by matchers that can report the first
// matched span within a line. The display layer uses it to highlight
// matches; it never affects which lines match.
type SpanFinder interface {
	// FindSpan returns the byte offsets [start, end) of the first match
	// within line. ok is false when the line does not match or the match
	// is empty.
	FindSpan(line string) (start, end int, ok bool)
}

// NewMatcher builds the matcher for one search run.
//
// With useRegex false the query is matched by literal containment; when
// ignoreCase is set both sides are lowercased ASCII-only (bytes outside
// 'A'-'Z' are left untouched — this is a deliberate limitation, not full
// Unicode case folding), and the query is lowercased here, once per run.
//
// With useRegex true the query is compiled once; ignoreCase is handled
// by the (?i) flag rather than by lowercasing input. A malformed pattern
// is a configuration error reported here, before any file is scanned.
func NewMatcher(query string, ignoreCase, useRegex bool) (Matcher, error) {
	if useRegex {
		expr := query
		if ignoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", query, err)
		}
		return &regexMatcher{re: re}, nil
	}

	if ignoreCase {
		return &substringMatcher{query: lowerASCII(query), ignoreCase: true}, nil
	}
	return &substringMatcher{query: query}, nil
}

// substringMatcher matches by literal containment. When ignoreCase is
// set, query is already lowercased and each line is lowercased before
// the containment check.
type substringMatcher struct {
	query      string
	ignoreCase bool
}

// MatchLine reports whether line contains the query as a contiguous
// substring. An empty query matches every line.
func (m *substringMatcher) MatchLine(line string) bool {
	if m.ignoreCase {
		line = lowerASCII(line)
	}
	return strings.Contains(line, m.query)
}

// FindSpan returns the first occurrence of the query within line.
// ASCII lowercasing preserves byte offsets, so the span found in the
// lowered line is valid for the original.
func (m *substringMatcher) FindSpan(line string) (int, int, bool) {
	haystack := line
	if m.ignoreCase {
		haystack = lowerASCII(line)
	}
	idx := strings.Index(haystack, m.query)
	if idx < 0 || len(m.query) == 0 {
		return 0, 0, false
	}
	return idx, idx + len(m.query), true
}

// regexMatcher matches by unanchored regular-expression search:
// a line matches if the pattern matches any substring of it.
type regexMatcher struct {
	re *regexp.Regexp
}

// MatchLine reports whether the compiled pattern matches anywhere in line.
func (m *regexMatcher) MatchLine(line string) bool {
	return m.re.MatchString(line)
}

// FindSpan returns the leftmost match of the pattern within line.
func (m *regexMatcher) FindSpan(line string) (int, int, bool) {
	loc := m.re.FindStringIndex(line)
	if loc == nil || loc[0] == loc[1] {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// lowerASCII lowercases the ASCII letters of s and leaves every other
// byte unchanged.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}

	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
