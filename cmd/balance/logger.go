package main

import (
	"fmt"
	"io"
	"sync"
)

// cliLogger writes diagnostics to stderr. Debug lines need --verbose;
// warnings are dropped with --quiet. Safe for concurrent use.
type cliLogger struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
	quiet   bool
}

func newLogger(w io.Writer, verbose, quiet bool) *cliLogger {
	return &cliLogger{w: w, verbose: verbose, quiet: quiet}
}

// Log implements scanner.DebugLogger.
func (l *cliLogger) Log(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[debug] ", format, args...)
}

// Info writes a status line unless quiet.
func (l *cliLogger) Info(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.write("", format, args...)
}

// Warn writes a warning unless quiet.
func (l *cliLogger) Warn(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.write("warning: ", format, args...)
}

func (l *cliLogger) write(prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, prefix+format+"\n", args...)
}
