// Package lexer holds the character-level rules shared by the declaration scanner.
package lexer

import "strings"

// IsLetter reports whether ch is an ASCII letter
func IsLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// IsDigit reports whether ch is an ASCII digit
func IsDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// IsWordChar reports whether ch can appear in a name, key or type token
func IsWordChar(ch byte) bool {
	return IsLetter(ch) || IsDigit(ch) || ch == '_'
}

// IsSpace reports whether ch is whitespace, newlines included
func IsSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// IsQuote reports whether ch opens or closes a string literal
func IsQuote(ch byte) bool {
	return ch == '"' || ch == '\''
}

// Normalize removes all whitespace and comments outside of quoted literals.
// Whitespace inside "..." or '...' is literal content and is kept. A "#" comments
// out the rest of its line and "<# ... #>" comments out everything it encloses.
func Normalize(input string) string {
	var out strings.Builder
	out.Grow(len(input))

	var quote byte
	lineComment, blockComment := false, false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case blockComment:
			if ch == '#' && i+1 < len(input) && input[i+1] == '>' {
				blockComment = false
				i++
			}
		case lineComment:
			if ch == '\n' {
				lineComment = false
			}
		case quote != 0:
			if ch == quote {
				quote = 0
			}
			out.WriteByte(ch)
		case IsQuote(ch):
			quote = ch
			out.WriteByte(ch)
		case ch == '<' && i+1 < len(input) && input[i+1] == '#':
			blockComment = true
			i++
		case ch == '#':
			lineComment = true
		case IsSpace(ch):
			// dropped
		default:
			out.WriteByte(ch)
		}
	}

	return out.String()
}
