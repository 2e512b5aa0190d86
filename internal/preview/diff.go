// Package preview renders what a save would change in an env file.
package preview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the changed lines between before and after, removed lines
// prefixed with "- " and added lines with "+ ". Unchanged lines are left out.
// It returns "" when the texts are equal.
func Diff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var marker string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = "- "
		case diffmatchpatch.DiffInsert:
			marker = "+ "
		default:
			continue
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(marker)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
