package jni

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/jnizero/java"
)

// EscapeClassName turns a slash path into the form used inside JNI symbol
// names: '_' becomes "_1", '/' becomes '_' and '$' becomes "_00024".
func EscapeClassName(fullyQualifiedClass string) string {
	escaped := strings.ReplaceAll(fullyQualifiedClass, "_", "_1")
	return strings.NewReplacer("/", "_", "$", "_00024").Replace(escaped)
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isTestOnlyName(name string) bool {
	return strings.HasSuffix(name, "ForTest") || strings.HasSuffix(name, "ForTesting")
}

// MangledType returns a short identifier fragment for t. Descriptors of up
// to two characters are used as is with 'A' for '['. Longer ones keep
// upper-case letters and the first letter of every package component.
func MangledType(t java.Type) string {
	descriptor := t.Descriptor()
	if len(descriptor) <= 2 {
		return strings.ReplaceAll(descriptor, "[", "A")
	}
	var sb strings.Builder
	// The leading character is skipped, so one-dimensional arrays carry no
	// 'A' of their own.
	for i := 1; i < len(descriptor); i++ {
		c := descriptor[i]
		prev := descriptor[i-1]
		switch {
		case c == '[':
			sb.WriteByte('A')
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c)
		case (prev == '/' || prev == 'L') && isIdentifierByte(c):
			sb.WriteString(strings.ToUpper(string(c)))
		}
	}
	return sb.String()
}

func isIdentifierByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

var identifierRe = regexp.MustCompile(`^[0-9a-zA-Z_]+$`)

// MangledMethodName appends the mangled return and parameter types to name.
// The result is unique among valid overloads of the same method.
func MangledMethodName(name string, sig java.Signature) string {
	items := []string{MangledType(sig.ReturnType)}
	for _, t := range sig.ParamTypes() {
		items = append(items, MangledType(t))
	}
	mangled := name + strings.Join(items, "_")
	if !identifierRe.MatchString(mangled) {
		panic("jni: mangled name is not an identifier: " + mangled)
	}
	return mangled
}

type overloadable interface {
	overloadKey() (className, name string)
	signature() java.Signature
	setMethodIDVarName(string)
}

// mangleOverloads gives every method a method ID variable name: its plain
// name when it is the only one with that name in its class, a mangled name
// otherwise.
func mangleOverloads[T overloadable](methods []T) {
	type key struct{ className, name string }
	counts := make(map[key]int)
	for _, m := range methods {
		c, n := m.overloadKey()
		counts[key{c, n}]++
	}
	for _, m := range methods {
		c, n := m.overloadKey()
		if counts[key{c, n}] > 1 {
			m.setMethodIDVarName(MangledMethodName(n, m.signature()))
		} else {
			m.setMethodIDVarName(n)
		}
	}
}

// MangleCalledByNatives assigns MethodIDVarName on every entry.
func MangleCalledByNatives(calledByNatives []*CalledByNative) []*CalledByNative {
	mangleOverloads(calledByNatives)
	return calledByNatives
}

// MangleNatives assigns MethodIDVarName on every native method.
func MangleNatives(natives []*NativeMethod) []*NativeMethod {
	mangleOverloads(natives)
	return natives
}
