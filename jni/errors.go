package jni

import (
	"fmt"
	"strings"
)

// ParseError is a structural failure while extracting one file. It is fatal
// for the whole generation run.
type ParseError struct {
	Filename string
	Message  string
	// Context holds the offending source lines, if any.
	Context []string
	Err     error
}

func newParseError(message string, context ...string) *ParseError {
	return &ParseError{Message: message, Context: context}
}

func (e *ParseError) Error() string {
	if e.Filename == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (when parsing %s)", e.Message, e.Filename)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Detail renders the error with its context lines as a block suitable for
// a build log.
func (e *ParseError) Detail() string {
	return fmt.Sprintf("***\nERROR: %s\n\n%s\n***", e.Error(), strings.Join(e.Context, "\n"))
}
