package errors

import (
	"fmt"
	"strings"
)

// Kind classifies why a declaration could not be parsed
type Kind int

const (
	// NotFound means the input holds no $name declaration at all
	NotFound Kind = iota + 1
	// FailedToParse means a declaration was found but its structure is malformed
	FailedToParse
)

// Error implements the error interface
func (k Kind) Error() string {
	switch k {
	case NotFound:
		return "no parameter found"
	case FailedToParse:
		return "failed to parse parameter"
	default:
		return "unknown parse error"
	}
}

// ParseError is a classified parse failure with position information
type ParseError struct {
	Kind    Kind
	Message string
	Offset  int    // offset into Source, -1 when the fault is the end of input
	Source  string // the normalized declaration text that was scanned
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

// Unwrap exposes the kind so errors.Is(err, NotFound) works
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// FormatError formats a parse error with a visual indicator under the faulty character
func (e *ParseError) FormatError() string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("\033[31mError\033[0m: %s\n", e.Error()))
	if e.Source == "" {
		return result.String()
	}

	col := e.Offset
	if col < 0 || col > len(e.Source) {
		col = len(e.Source)
	}
	result.WriteString(fmt.Sprintf("   \033[34m|\033[0m %s\n", e.Source))
	result.WriteString(fmt.Sprintf("   \033[34m|\033[0m %s\033[31m^\033[0m\n", strings.Repeat(" ", col)))

	if suggestion := e.getSuggestion(); suggestion != "" {
		result.WriteString(fmt.Sprintf("   \033[33mHelp:\033[0m %s\n", suggestion))
	}

	return result.String()
}

// getSuggestion returns a helpful suggestion for common parsing errors
func (e *ParseError) getSuggestion() string {
	msg := strings.ToLower(e.Message)

	if e.Kind == NotFound {
		return "Declare the parameter name with a '$' sigil, e.g. [string]$Name"
	}

	if strings.Contains(msg, "unclosed '['") {
		return "Close the section with ']'"
	}

	if strings.Contains(msg, "unclosed '('") {
		return "Close the attribute argument list with ')'"
	}

	if strings.Contains(msg, "default value") {
		return "Only $true and $false are supported as default values"
	}

	return ""
}

// New creates a new parse error
func New(kind Kind, message string, offset int, source string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: message,
		Offset:  offset,
		Source:  source,
	}
}
