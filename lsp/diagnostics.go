package lsp

import (
	"errors"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jnizero/jni"
)

// Diagnostics extracts bindings from text as if it were the file at path
// and reports the failure, if any. An empty slice means the file is fine.
func Diagnostics(path, text string, opts jni.Options) []protocol.Diagnostic {
	parsed, err := jni.ParseSource(path, text, opts)
	if err == nil {
		_, err = jni.NewBindings(parsed, opts)
	}
	if err == nil {
		return []protocol.Diagnostic{}
	}

	message := err.Error()
	rng := protocol.Range{}
	var perr *jni.ParseError
	if errors.As(err, &perr) {
		message = perr.Message
		for _, context := range perr.Context {
			if r, ok := findLine(text, context); ok {
				rng = r
				break
			}
		}
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range:    rng,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}}
}

// findLine locates the first line of snippet in text.
func findLine(text, snippet string) (protocol.Range, bool) {
	first, _, _ := strings.Cut(strings.TrimSpace(snippet), "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return protocol.Range{}, false
	}
	for i, line := range strings.Split(text, "\n") {
		col := strings.Index(line, first)
		if col < 0 {
			continue
		}
		return protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(col)},
			End:   protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(col + len(first))},
		}, true
	}
	return protocol.Range{}, false
}
