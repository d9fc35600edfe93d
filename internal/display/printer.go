// Package display renders merged search results on the primary output
// stream. Rendering never reorders or filters matches; color is purely
// presentational and degrades to the plain "path:line:text" form when
// disabled or when the destination is not a terminal.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/callum/cgrep/internal/search"
)

// Printer writes matches to a single output writer.
type Printer struct {
	writer   io.Writer
	colorize bool
	finder   search.SpanFinder

	pathColor *color.Color
	numColor  *color.Color
	hitColor  *color.Color
}

// NewPrinter creates a Printer writing to w. Color output is used only
// when enabled AND w is a terminal. finder may be nil; it is used to
// highlight the matched span within each line and is only consulted
// when color output is active.
func NewPrinter(w io.Writer, enableColor bool, finder search.SpanFinder) *Printer {
	return &Printer{
		writer:    w,
		colorize:  enableColor && writerIsTerminal(w),
		finder:    finder,
		pathColor: color.New(color.FgCyan),
		numColor:  color.New(color.FgGreen),
		hitColor:  color.New(color.FgRed, color.Bold),
	}
}

// writerIsTerminal reports whether w is a TTY, honoring NO_COLOR.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintMatches writes every match, one per line, in the order given.
func (p *Printer) PrintMatches(matches []search.Match) error {
	for _, m := range matches {
		if err := p.printMatch(m); err != nil {
			return fmt.Errorf("writing match output: %w", err)
		}
	}
	return nil
}

func (p *Printer) printMatch(m search.Match) error {
	if !p.colorize {
		_, err := fmt.Fprintln(p.writer, m.String())
		return err
	}

	line := m.Line
	if p.finder != nil {
		if start, end, ok := p.finder.FindSpan(m.Line); ok {
			line = m.Line[:start] + p.hitColor.Sprint(m.Line[start:end]) + m.Line[end:]
		}
	}

	_, err := fmt.Fprintf(p.writer, "%s:%s:%s\n",
		p.pathColor.Sprint(m.Path),
		p.numColor.Sprint(m.LineNumber),
		line)
	return err
}
