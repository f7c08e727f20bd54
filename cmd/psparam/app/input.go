package app

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Domain: Input Loading
// This file contains logic for reading the declaration text

// ReadDeclaration returns the declaration from --input, --file or stdin ("-")
func ReadDeclaration(file, input string, stdin io.Reader) (string, error) {
	switch {
	case input != "" && file != "":
		return "", errors.New("use either --file or --input, not both")
	case input != "":
		return input, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read declaration file '%s': %w", file, err)
		}
		return string(data), nil
	default:
		return "", errors.New("no declaration given - use --file or --input")
	}
}
