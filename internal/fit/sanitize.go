package fit

import "strings"

// Sanitize strips markdown emphasis from model output so it renders as plain text.
// Bold markers are dropped, "* " bullets become "• " and any other asterisk is removed.
func Sanitize(raw string) string {
	text := strings.ReplaceAll(raw, "**", "")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "* ") || trimmed == "*" {
			indent := line[:len(line)-len(trimmed)]
			lines[i] = indent + "• " + strings.TrimLeft(trimmed[1:], " ")
		}
	}
	return strings.ReplaceAll(strings.Join(lines, "\n"), "*", "")
}
