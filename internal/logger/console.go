// Package logger provides the leveled console logger used for
// diagnostic output. Diagnostics always go to a stream separate from
// match output, so search results are never interleaved with them.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// ConsoleLogger writes leveled diagnostic messages to a writer.
// It is safe for concurrent use; the search workers report per-file
// failures through it while the scan phase runs.
// Severity tags are colorized when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w. If w is nil,
// messages are silently discarded. level is one of debug, info, warn,
// error (case-insensitive); empty or unknown values default to info.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		logLevel:    parseLevel(level),
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that should receive colorized
// severity tags. NO_COLOR is honored through the color package.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseLevel converts a level name to its numeric value, defaulting to
// info for empty or unknown names.
func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.log(levelDebug, "DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.log(levelInfo, "INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.log(levelWarn, "WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.log(levelError, "ERROR", message)
}

// log writes one "[LEVEL] message" line if the message passes the
// configured level filter. The whole line is written under the mutex so
// concurrent workers never interleave mid-line.
func (cl *ConsoleLogger) log(level int, tag, message string) {
	if cl.writer == nil || level < cl.logLevel {
		return
	}

	if cl.colorOutput {
		tag = colorizeTag(level, tag)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintf(cl.writer, "[%s] %s\n", tag, message)
}

// colorizeTag colors a severity tag: warnings yellow, errors red,
// debug output faint.
func colorizeTag(level int, tag string) string {
	switch level {
	case levelDebug:
		return color.New(color.Faint).Sprint(tag)
	case levelWarn:
		return color.New(color.FgYellow).Sprint(tag)
	case levelError:
		return color.New(color.FgRed).Sprint(tag)
	default:
		return tag
	}
}
