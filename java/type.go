package java

import (
	"strings"
)

// Class is a fully-qualified class identity such as "org/chromium/Foo$Bar".
// Package components are separated by '/', nested classes by '$'.
type Class struct {
	path string
}

func NewClass(path string) Class {
	return Class{path: path}
}

// ObjectClass is java/lang/Object, the type every non-special reference
// collapses to when crossing a proxy boundary.
var ObjectClass = NewClass("java/lang/Object")

func (c Class) IsZero() bool {
	return c.path == ""
}

// Name returns the class name without its package, e.g. "Foo$Bar".
func (c Class) Name() string {
	return c.path[strings.LastIndexByte(c.path, '/')+1:]
}

// NestedName returns the innermost name, e.g. "Bar" for "Foo$Bar".
func (c Class) NestedName() string {
	name := c.Name()
	return name[strings.LastIndexByte(name, '$')+1:]
}

func (c Class) PackageName() string {
	i := strings.LastIndexByte(c.path, '/')
	if i < 0 {
		return ""
	}
	return c.path[:i]
}

func (c Class) FullNameWithSlashes() string {
	return c.path
}

func (c Class) FullNameWithDots() string {
	return strings.NewReplacer("/", ".", "$", ".").Replace(c.path)
}

func (c Class) IsNested() bool {
	return strings.Contains(c.Name(), "$")
}

// Outer returns the directly enclosing class of a nested class.
func (c Class) Outer() (Class, bool) {
	i := strings.LastIndexByte(c.path, '$')
	if i < 0 || i < strings.LastIndexByte(c.path, '/') {
		return Class{}, false
	}
	return Class{path: c.path[:i]}, true
}

func (c Class) MakeNested(name string) Class {
	return Class{path: c.path + "$" + name}
}

// MakePrefixed moves the class under a dotted package prefix.
func (c Class) MakePrefixed(prefix string) Class {
	if prefix == "" {
		return c
	}
	return Class{path: strings.ReplaceAll(prefix, ".", "/") + "/" + c.path}
}

var cppTypeByClass = map[string]string{
	"java/lang/String":    "jstring",
	"java/lang/Class":     "jclass",
	"java/lang/Throwable": "jthrowable",
}

func (c Class) ToCpp() string {
	if t, ok := cppTypeByClass[c.path]; ok {
		return t
	}
	return "jobject"
}

func (c Class) String() string {
	return c.path
}

var primitiveDescriptors = map[string]string{
	"int":     "I",
	"boolean": "Z",
	"char":    "C",
	"short":   "S",
	"long":    "J",
	"double":  "D",
	"float":   "F",
	"byte":    "B",
	"void":    "V",
}

func IsPrimitive(name string) bool {
	_, ok := primitiveDescriptors[name]
	return ok
}

// Type is a Java value type as it appears at a use site. Exactly one of
// Primitive and Class is set; ArrayDimensions applies to either.
type Type struct {
	ArrayDimensions int
	Primitive       string
	Class           Class
	Annotations     map[string]string
}

var (
	Void    = PrimitiveType("void", 0)
	Int     = PrimitiveType("int", 0)
	Long    = PrimitiveType("long", 0)
	Boolean = PrimitiveType("boolean", 0)
)

func PrimitiveType(name string, arrayDimensions int) Type {
	if !IsPrimitive(name) {
		panic("java: not a primitive type: " + name)
	}
	return Type{ArrayDimensions: arrayDimensions, Primitive: name}
}

func ClassType(c Class, arrayDimensions int) Type {
	if c.IsZero() {
		panic("java: class type without a class")
	}
	return Type{ArrayDimensions: arrayDimensions, Class: c}
}

// WithAnnotations returns a copy of t carrying the given use-site
// annotations.
func (t Type) WithAnnotations(annotations map[string]string) Type {
	t.Annotations = annotations
	return t
}

func (t Type) IsPrimitive() bool {
	return t.Primitive != "" && t.ArrayDimensions == 0
}

func (t Type) IsArray() bool {
	return t.ArrayDimensions > 0
}

func (t Type) IsVoid() bool {
	return t.Primitive == "void" && t.ArrayDimensions == 0
}

// ElementType strips one array dimension.
func (t Type) ElementType() Type {
	if t.ArrayDimensions == 0 {
		return t
	}
	t.ArrayDimensions--
	return t
}

func (t Type) NonArrayFullName() string {
	if t.Primitive != "" {
		return t.Primitive
	}
	return t.Class.FullNameWithSlashes()
}

// Descriptor returns the JNI type descriptor, e.g. "[I" or "Ljava/lang/String;".
func (t Type) Descriptor() string {
	var sb strings.Builder
	for i := 0; i < t.ArrayDimensions; i++ {
		sb.WriteByte('[')
	}
	if t.Primitive != "" {
		sb.WriteString(primitiveDescriptors[t.Primitive])
	} else {
		sb.WriteByte('L')
		sb.WriteString(t.Class.FullNameWithSlashes())
		sb.WriteByte(';')
	}
	return sb.String()
}

// ToCpp returns the JNI C++ type used to carry a value of this type.
func (t Type) ToCpp() string {
	switch {
	case t.ArrayDimensions == 1 && t.Primitive != "":
		return "j" + t.Primitive + "Array"
	case t.ArrayDimensions > 0:
		return "jobjectArray"
	case t.Primitive == "void":
		return "void"
	case t.Primitive != "":
		return "j" + t.Primitive
	}
	return t.Class.ToCpp()
}

// CppDefaultValue is the value returned from a stub when the call cannot be
// made. Empty for void.
func (t Type) CppDefaultValue() string {
	switch {
	case t.IsVoid():
		return ""
	case t.IsPrimitive() && t.Primitive == "boolean":
		return "false"
	case t.IsPrimitive():
		return "0"
	}
	return "nullptr"
}

// ToProxy maps t onto the reduced vocabulary usable over a proxy interface:
// primitives, String, Class and Throwable pass through and every other class
// becomes Object, keeping the array arity.
func (t Type) ToProxy() Type {
	if t.Primitive != "" {
		return t
	}
	if _, ok := cppTypeByClass[t.Class.FullNameWithSlashes()]; ok {
		return t
	}
	t.Class = ObjectClass
	return t
}

// String renders the type in Java source form.
func (t Type) String() string {
	var sb strings.Builder
	if t.Primitive != "" {
		sb.WriteString(t.Primitive)
	} else {
		sb.WriteString(t.Class.FullNameWithDots())
	}
	for i := 0; i < t.ArrayDimensions; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t Type) Compare(o Type) int {
	return strings.Compare(t.Descriptor(), o.Descriptor())
}
