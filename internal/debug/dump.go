package debug

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/phillarmonic/psparam/internal/domain/parameter"
	"github.com/phillarmonic/psparam/internal/types"
)

// Format is an output format for dumps
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name, defaulting to YAML for ""
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (expected yaml or json)", s)
	}
}

// DumpParameter writes the parameter in the given format
func DumpParameter(w io.Writer, p parameter.Parameter, format Format) error {
	return dump(w, p, format)
}

// DumpTypes writes the type token table in the given format
func DumpTypes(w io.Writer, format Format) error {
	return dump(w, types.All(), format)
}

func dump(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}
	return nil
}
