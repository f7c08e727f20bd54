// Package debug provides diagnostic hooks for the declaration parser.
package debug

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/phillarmonic/psparam/internal/parser"
)

// WriterTracer prints one line per scanned character
type WriterTracer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterTracer creates a tracer writing to w
func NewWriterTracer(w io.Writer) *WriterTracer {
	return &WriterTracer{w: w}
}

// Trace implements parser.Tracer
func (t *WriterTracer) Trace(step parser.Step) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if step.Char == 0 {
		fmt.Fprintf(t.w, "  %d: %-6s %s\n", step.Offset, "EOF", flags(step.State))
	} else {
		fmt.Fprintf(t.w, "  %d: %-6q %s\n", step.Offset, step.Char, flags(step.State))
	}
	if step.Err != nil {
		fmt.Fprintf(t.w, "  error: %v\n", step.Err)
	}
}

// flags renders the open scopes compactly, e.g. "[section subsection] name=\"N\""
func flags(s parser.Snapshot) string {
	open := ""
	add := func(on bool, name string) {
		if !on {
			return
		}
		if open != "" {
			open += " "
		}
		open += name
	}
	add(s.InSection, "section")
	add(s.InSubsection, "subsection")
	add(s.InName, "name")
	add(s.InDefault, "default")
	add(s.InQuote, "quote")

	return fmt.Sprintf("[%s] section=%s(%q) name=%q type=%s", open, s.Section, s.SectionName, s.Name, s.DataType)
}

// ZapTracer logs scan steps as structured debug events
type ZapTracer struct {
	logger *zap.Logger
}

// NewZapTracer creates a tracer logging to logger
func NewZapTracer(logger *zap.Logger) *ZapTracer {
	return &ZapTracer{logger: logger.Named("scanner")}
}

// Trace implements parser.Tracer
func (t *ZapTracer) Trace(step parser.Step) {
	fields := []zap.Field{
		zap.Int("offset", step.Offset),
		zap.Bool("in_section", step.State.InSection),
		zap.Bool("in_subsection", step.State.InSubsection),
		zap.Bool("in_name", step.State.InName),
		zap.Bool("in_default", step.State.InDefault),
		zap.Stringer("section", step.State.Section),
		zap.String("name", step.State.Name),
		zap.Stringer("data_type", step.State.DataType),
	}

	if step.Err != nil {
		t.logger.Debug("scan failed", append(fields, zap.Error(step.Err))...)
		return
	}
	if step.Char == 0 {
		t.logger.Debug("end of input", fields...)
		return
	}
	t.logger.Debug("char", append(fields, zap.String("char", string(step.Char)))...)
}
