package search

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// scanFile reads the file at path line by line and returns a Match for
// every line the matcher accepts. Lines are split at '\n'; a trailing
// '\r' is stripped before matching so Windows-style line endings behave
// like Unix ones. A final line without a trailing newline is still
// scanned. There is no maximum line length.
//
// On an open or read failure the error is returned along with whatever
// matches were collected; callers treat this as a per-file diagnostic,
// not a reason to abort the search.
func scanFile(path string, matcher Matcher) ([]Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var matches []Match
	lineNumber := 0

	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			lineNumber++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if matcher.MatchLine(line) {
				matches = append(matches, Match{
					Path:       path,
					LineNumber: lineNumber,
					Line:       line,
				})
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return matches, nil
			}
			return matches, fmt.Errorf("error reading file %s: %w", path, readErr)
		}
	}
}
