package llm

import "strings"

// CleanText trims a completion. A single code fence wrapping the whole
// answer, which chat models sometimes add around plain text, is removed;
// any other fence is part of the answer and left alone.
func CleanText(raw string) string {
	s := strings.TrimSpace(raw)
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	first, last := strings.TrimSpace(lines[0]), strings.TrimSpace(lines[len(lines)-1])
	if !strings.HasPrefix(first, "```") || last != "```" {
		return s
	}
	inner := lines[1 : len(lines)-1]
	for _, l := range inner {
		if strings.HasPrefix(strings.TrimSpace(l), "```") {
			return s
		}
	}
	return strings.TrimSpace(strings.Join(inner, "\n"))
}
