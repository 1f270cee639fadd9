// Package diag is the single diagnostic channel for the extraction
// pipeline. Recoverable conditions are reported here with severity and
// source location; they never halt processing of subsequent comments.
package diag

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Severity classifies a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic carries one reported condition.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
	Line     int
	Err      error // underlying sentinel, if any
}

func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("%s: %s:%d: %s", d.Severity, d.File, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Reporter receives diagnostics. Implementations must be safe for use
// from a single traversal goroutine; they are not required to be
// concurrency-safe except where documented.
type Reporter interface {
	Report(d Diagnostic)
}

// Infof reports an informational diagnostic.
func Infof(r Reporter, file string, line int, format string, args ...interface{}) {
	r.Report(Diagnostic{Severity: Info, File: file, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Warningf reports a warning.
func Warningf(r Reporter, file string, line int, format string, args ...interface{}) {
	r.Report(Diagnostic{Severity: Warning, File: file, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Errorf reports a recoverable error diagnostic wrapping err.
func Errorf(r Reporter, err error, file string, line int, format string, args ...interface{}) {
	r.Report(Diagnostic{Severity: Error, Err: err, File: file, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Nop discards all diagnostics.
type Nop struct{}

func (Nop) Report(Diagnostic) {}

// ZapReporter forwards diagnostics to a zap logger.
type ZapReporter struct {
	Log *zap.SugaredLogger
}

func (z ZapReporter) Report(d Diagnostic) {
	log := z.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	fields := []interface{}{"file", d.File, "line", d.Line}
	if d.Err != nil {
		fields = append(fields, "err", d.Err)
	}
	switch d.Severity {
	case Info:
		log.Infow(d.Message, fields...)
	case Warning:
		log.Warnw(d.Message, fields...)
	default:
		log.Errorw(d.Message, fields...)
	}
}

// ConsoleReporter writes human-readable diagnostics, severity colored.
type ConsoleReporter struct {
	Out io.Writer
}

var (
	infoColor  = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
)

func (c ConsoleReporter) Report(d Diagnostic) {
	col := infoColor
	switch d.Severity {
	case Warning:
		col = warnColor
	case Error:
		col = errorColor
	}
	fmt.Fprintln(c.Out, col.Sprint(d.String()))
}

// Collector accumulates diagnostics for inspection, mainly in tests.
// Safe for concurrent use.
type Collector struct {
	mu   sync.Mutex
	list []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append(c.list, d)
}

// All returns a copy of the reported diagnostics in order.
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.list))
	copy(out, c.list)
	return out
}

// Count returns the number of diagnostics at or above sev.
func (c *Collector) Count(sev Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.list {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

// Reset clears collected diagnostics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = nil
}
