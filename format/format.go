// Package format renders extracted bindings for inspection.
package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/jnizero/jni"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(b *jni.Bindings) error
}

// NewEncoder returns the encoder registered under name, or nil.
func NewEncoder(name string, w io.Writer) Encoder {
	switch name {
	case "json":
		return NewJSONEncoder(w)
	case "line":
		return NewLineEncoder(w)
	}
	return nil
}

// Names lists the encoders NewEncoder knows about.
var Names = []string{"json", "line"}
