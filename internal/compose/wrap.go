package compose

import "strings"

// Wrap breaks text into lines no wider than maxWidth using greedy word fill.
// A candidate line is measured with its trailing space, and the first word
// of a paragraph is never pushed down, so a single over-long word still gets
// its own line. The returned lines carry no trailing space. Text without any
// words yields one empty line.
func Wrap(text string, maxWidth int, measure func(string) int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for n, w := range words {
		candidate := line + w + " "
		if measure(candidate) > maxWidth && n > 0 {
			lines = append(lines, strings.TrimRight(line, " "))
			line = w + " "
			continue
		}
		line = candidate
	}
	return append(lines, strings.TrimRight(line, " "))
}
