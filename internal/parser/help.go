package parser

import "strings"

// splitHelp separates the comment block that precedes a declaration from the
// declaration itself. Leading "# ..." lines and "<# ... #>" blocks become help text;
// comment lines after the first declaration line are dropped. Text following a
// closing "#>" on the same line belongs to the declaration.
func splitHelp(input string) (help string, body string) {
	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")

	var helpLines, bodyLines []string
	inBlock := false
	leading := true

	// block consumes comment text up to "#>" and hands the rest of the line to the body
	block := func(text string) {
		inside, rest, closed := strings.Cut(text, "#>")
		if leading {
			helpLines = append(helpLines, strings.TrimSpace(inside))
		}
		inBlock = !closed
		if rest = strings.TrimSpace(rest); closed && rest != "" {
			leading = false
			bodyLines = append(bodyLines, rest)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			block(trimmed)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "<#"):
			block(strings.TrimPrefix(trimmed, "<#"))
		case strings.HasPrefix(trimmed, "#"):
			if leading {
				helpLines = append(helpLines, strings.TrimSpace(strings.TrimLeft(trimmed, "#")))
			}
		case trimmed == "":
			if !leading {
				bodyLines = append(bodyLines, line)
			}
		default:
			leading = false
			bodyLines = append(bodyLines, line)
		}
	}

	return strings.TrimSpace(strings.Join(helpLines, "\n")), strings.Join(bodyLines, "\n")
}
