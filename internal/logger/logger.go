// Package logger provides levelled logging for wcgraph.
// Warnings are always printed so partial catalog fetches are visible.
// Debug, info and section output appear only in verbose mode, enabled
// via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Logger writes levelled messages to an output writer.
// A nil *Logger discards everything.
type Logger struct {
	mu       sync.Mutex
	verbose  bool
	output   io.Writer
	warnings atomic.Int64
}

// New creates a logger writing to w.
func New(w io.Writer, verbose bool) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{output: w, verbose: verbose}
}

var std = New(os.Stderr, false)

// Default returns the process-wide logger used by the CLI.
func Default() *Logger {
	return std
}

// SetVerbose enables or disables verbose logging.
func (l *Logger) SetVerbose(v bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	l.printf(true, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	l.printf(true, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) {
	l.printf(true, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message and counts it.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.warnings.Add(1)
	l.printf(false, "[WARN] "+format+"\n", args...)
}

// Warnings returns the number of warnings logged so far.
func (l *Logger) Warnings() int {
	if l == nil {
		return 0
	}
	return int(l.warnings.Load())
}

func (l *Logger) printf(verboseOnly bool, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if verboseOnly && !l.verbose {
		return
	}
	fmt.Fprintf(l.output, format, args...)
}

// SetVerbose enables or disables verbose logging on the default logger.
func SetVerbose(v bool) { std.SetVerbose(v) }

// IsVerbose reports whether the default logger is verbose.
func IsVerbose() bool { return std.IsVerbose() }

// SetOutput sets the default logger's output. Useful for testing.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Debug logs on the default logger.
func Debug(format string, args ...any) { std.Debug(format, args...) }

// Section logs on the default logger.
func Section(name string) { std.Section(name) }

// Info logs on the default logger.
func Info(format string, args ...any) { std.Info(format, args...) }

// Warn logs on the default logger.
func Warn(format string, args ...any) { std.Warn(format, args...) }
