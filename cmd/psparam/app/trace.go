package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phillarmonic/psparam/internal/debug"
	"github.com/phillarmonic/psparam/internal/parser"
)

// Domain: Scanner Tracing
// This file contains logic for wiring the --trace flag to a parser tracer

const (
	TraceOff   = ""
	TraceLog   = "log"
	TraceChars = "chars"
)

func validateTraceMode(mode string) error {
	switch mode {
	case TraceOff, TraceLog, TraceChars:
		return nil
	default:
		return fmt.Errorf("unknown trace mode: %s (expected log or chars)", mode)
	}
}

// NewTracer builds the tracer for mode writing to w. The returned func flushes it.
func NewTracer(mode string, w io.Writer) (parser.Tracer, func(), error) {
	switch mode {
	case TraceOff:
		return nil, func() {}, nil
	case TraceChars:
		return debug.NewWriterTracer(w), func() {}, nil
	case TraceLog:
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(w),
			zapcore.DebugLevel,
		)
		logger := zap.New(core)
		return debug.NewZapTracer(logger), func() { _ = logger.Sync() }, nil
	default:
		return nil, nil, validateTraceMode(mode)
	}
}
