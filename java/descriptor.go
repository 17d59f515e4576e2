package java

import (
	"fmt"
	"strconv"
	"strings"
)

var primitivesByDescriptor = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

// ParseFieldDescriptor decodes a single JNI type descriptor such as
// "[Ljava/lang/String;".
func ParseFieldDescriptor(desc string) (Type, error) {
	t, n, err := parseFieldType(desc, 0)
	if err != nil {
		return Type{}, err
	}
	if n != len(desc) {
		return Type{}, fmt.Errorf("trailing data in descriptor %q", desc)
	}
	return t, nil
}

// ParseMethodDescriptor decodes a JNI method descriptor such as
// "(I[Ljava/lang/String;)V". Parameters are named p0, p1, ...
func ParseMethodDescriptor(desc string) (Signature, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return Signature{}, fmt.Errorf("method descriptor %q does not start with '('", desc)
	}

	var params ParamList
	i := 1
	for i < len(desc) && desc[i] != ')' {
		t, consumed, err := parseFieldType(desc, i)
		if err != nil {
			return Signature{}, err
		}
		params = append(params, Param{Type: t, Name: "p" + strconv.Itoa(len(params))})
		i += consumed
	}
	if i >= len(desc) {
		return Signature{}, fmt.Errorf("method descriptor %q is missing ')'", desc)
	}
	i++

	ret, consumed, err := parseFieldType(desc, i)
	if err != nil {
		return Signature{}, err
	}
	if i+consumed != len(desc) {
		return Signature{}, fmt.Errorf("trailing data in descriptor %q", desc)
	}
	return NewSignature(ret, params), nil
}

func parseFieldType(desc string, start int) (Type, int, error) {
	i := start
	dims := 0
	for i < len(desc) && desc[i] == '[' {
		dims++
		i++
	}
	if i >= len(desc) {
		return Type{}, 0, fmt.Errorf("truncated descriptor %q", desc)
	}

	if desc[i] == 'L' {
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return Type{}, 0, fmt.Errorf("malformed class in descriptor %q", desc)
		}
		return ClassType(NewClass(desc[i+1:i+semicolon]), dims), i - start + semicolon + 1, nil
	}
	name, ok := primitivesByDescriptor[desc[i]]
	if !ok || (name == "void" && dims > 0) {
		return Type{}, 0, fmt.Errorf("invalid descriptor %q at offset %d", desc, i)
	}
	return PrimitiveType(name, dims), i - start + 1, nil
}
