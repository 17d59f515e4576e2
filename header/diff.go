package header

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff from the header currently at path to the
// newly generated one. It is empty when they are equal.
func Diff(path, current, generated string) (string, error) {
	if current == generated {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(current),
		B:        splitLines(generated),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
}

// splitLines keeps line terminators and, unlike difflib.SplitLines, adds
// no empty line after a trailing newline.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
