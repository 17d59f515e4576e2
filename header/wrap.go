package header

import (
	"regexp"
	"strings"
)

const wrapLineLength = 100

var chunkRe = regexp.MustCompile(`\s+|\S+`)

// WrapOutput breaks lines of 100 or more columns on whitespace. Preprocessor
// directives and comments are left alone, and words are never split.
// Continuation lines are indented four columns past the original line.
func WrapOutput(output string) string {
	if output == "" {
		return ""
	}
	var ret []string
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		if len(line) < wrapLineLength || line[0] == '#' || strings.HasPrefix(line, "//") {
			ret = append(ret, line)
			continue
		}
		ret = append(ret, wrapLine(line)...)
	}
	return strings.Join(ret, "\n") + "\n"
}

func wrapLine(line string) []string {
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	subsequent := strings.Repeat(" ", indent+4)
	chunks := chunkRe.FindAllString(line, -1)

	var lines []string
	for len(chunks) > 0 {
		prefix := ""
		if len(lines) > 0 {
			prefix = subsequent
			if strings.TrimSpace(chunks[0]) == "" {
				chunks = chunks[1:]
				continue
			}
		}
		width := wrapLineLength - len(prefix)

		var cur []string
		n := 0
		for len(chunks) > 0 && n+len(chunks[0]) <= width {
			n += len(chunks[0])
			cur = append(cur, chunks[0])
			chunks = chunks[1:]
		}
		if len(cur) == 0 {
			// A word wider than the line goes on a line of its own.
			cur = append(cur, chunks[0])
			chunks = chunks[1:]
		}
		if last := len(cur) - 1; strings.TrimSpace(cur[last]) == "" {
			cur = cur[:last]
		}
		if len(cur) > 0 {
			lines = append(lines, prefix+strings.Join(cur, ""))
		}
	}
	return lines
}
