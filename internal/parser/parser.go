// Package parser extracts a single parameter declaration of the form
//
//	[Parameter(Mandatory=$true, ParameterSetName="Set")] [Type] $Name = $false
//
// using a single forward pass over the whitespace-stripped text.
package parser

import (
	stderrors "errors"

	"github.com/phillarmonic/psparam/internal/domain/parameter"
	perrors "github.com/phillarmonic/psparam/internal/errors"
	"github.com/phillarmonic/psparam/internal/lexer"
)

// Step describes one scanned character. The final step of a scan has Char 0 and
// Offset equal to the text length.
type Step struct {
	Offset int
	Char   byte
	State  Snapshot
	Err    error // set on the step that ended the scan with an error
}

// Tracer receives scan steps. It is a debug aid only.
type Tracer interface {
	Trace(step Step)
}

// TracerFunc adapts a function to the Tracer interface
type TracerFunc func(step Step)

// Trace calls f(step)
func (f TracerFunc) Trace(step Step) {
	f(step)
}

// Options configures a Parser
type Options struct {
	// Tracer receives every scan step (defaults to nil, no tracing)
	Tracer Tracer
}

// Option is a functional option for configuring the Parser
type Option func(*Options)

// WithTracer sets the diagnostic tracer
func WithTracer(t Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

// Parser parses parameter declarations. It holds no scan state, so one Parser may be
// used from several goroutines when its Tracer is safe for concurrent use.
type Parser struct {
	opts Options
}

// NewParser creates a new parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// Parse parses one declaration with default options
func Parse(block string) (parameter.Parameter, error) {
	return NewParser().Parse(block)
}

// Parse extracts the parameter declared in block. On failure the error is a
// *errors.ParseError whose Kind is NotFound or FailedToParse.
func (p *Parser) Parse(block string) (parameter.Parameter, error) {
	help, body := splitHelp(block)
	text := lexer.Normalize(body)

	st := NewState()
	for i := 0; i < len(text); i++ {
		err := st.Step(text[i])
		p.trace(st, i, text[i], err)
		if err != nil {
			return parameter.Parameter{}, withSource(err, text)
		}
	}

	param, err := st.Finish()
	p.trace(st, len(text), 0, err)
	if err != nil {
		return parameter.Parameter{}, withSource(err, text)
	}

	if help != "" {
		param = param.WithHelp(help)
	}
	return param, nil
}

// trace reports a step; the snapshot is only taken when a tracer is set
func (p *Parser) trace(st *State, offset int, ch byte, err error) {
	if p.opts.Tracer == nil {
		return
	}
	p.opts.Tracer.Trace(Step{Offset: offset, Char: ch, State: st.Snapshot(), Err: err})
}

// withSource attaches the scanned text to a parse error for diagnostics
func withSource(err error, text string) error {
	var pe *perrors.ParseError
	if stderrors.As(err, &pe) {
		pe.Source = text
	}
	return err
}
