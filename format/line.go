package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jnizero/java"
	"github.com/dhamidi/jnizero/jni"
)

// LineEncoder writes one tab-separated record per declaration. Empty
// fields are written as "-".
type LineEncoder struct {
	w        io.Writer
	bindings *jni.Bindings
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(b *jni.Bindings) error {
	e.bindings = b
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	b := e.bindings

	fmt.Fprintf(&sb, "class\t%s\t%s\t%s\n",
		b.Class.FullNameWithSlashes(), orDash(b.Namespace), orDash(b.ModuleName))

	for _, n := range b.Natives {
		fmt.Fprintf(&sb, "native\t%s\t%s\t%s\t%s\t%s\t%s\n",
			n.Name,
			n.Kind,
			parametersStr(n.Params()),
			n.ReturnType().String(),
			n.MethodIDVarName,
			modifiersStr(nativeModifiers(n)),
		)
	}

	for _, c := range b.CalledByNatives {
		fmt.Fprintf(&sb, "calledByNative\t%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(c.JavaClassName),
			c.Name,
			c.JNIDescriptor(),
			c.ReturnType().String(),
			c.MethodIDVarName,
			modifiersStr(calledByNativeModifiers(c)),
		)
	}

	for _, c := range b.ConstantFields {
		fmt.Fprintf(&sb, "constant\t%s\t%d\n", c.Name, c.Value)
	}

	return []byte(sb.String()), nil
}

func parametersStr(params java.ParamList) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.String()
	}
	return strings.Join(parts, ",")
}

func modifiersStr(mods []string) string {
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
