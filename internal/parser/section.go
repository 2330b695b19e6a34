package parser

import (
	"regexp"
	"strings"
)

var (
	dateLineRe   = regexp.MustCompile(`(?m)^\d{4}-\d{2}-\d{2}.*$`)
	blankSplitRe = regexp.MustCompile(`\n{2,}`)
)

// SplitSections partitions text into one trimmed block per logged activity.
// Any remaining date-like lines are removed first.
func SplitSections(content string) []string {
	text := dateLineRe.ReplaceAllString(normalizeNewlines(content), "")

	var sections []string
	for _, block := range blankSplitRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block != "" {
			sections = append(sections, block)
		}
	}
	return sections
}

// splitNameAndMetadata returns the first non-blank trimmed line as the name and the rest
// as metadata lines.
func splitNameAndMetadata(section string) (string, []string) {
	var lines []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], lines[1:]
}
