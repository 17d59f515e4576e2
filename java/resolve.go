package java

import (
	"fmt"
	"strings"
	"unicode"
)

// InnerClassImportError reports a reference that matched an import of a
// nested class. Nested classes have to be reached through their outer
// class import, e.g. "import pkg.Outer;" and "Outer.Inner".
type InnerClassImportError struct {
	Import string
	Name   string
}

func (e *InnerClassImportError) Error() string {
	return fmt.Sprintf("inner class (%s) can not be imported and used by JNI (%s); "+
		"import the outer class and use Outer.Inner instead", e.Import, e.Name)
}

// Resolver turns type names written in one compilation unit into
// fully-qualified classes. It holds the unit's class, imports and nested
// classes and must not be shared between units.
type Resolver struct {
	class   Class
	imports []Class
	nested  []Class
}

func NewResolver(class Class) *Resolver {
	return &Resolver{class: class}
}

func (r *Resolver) Class() Class {
	return r.class
}

func (r *Resolver) Package() string {
	return r.class.PackageName()
}

// AddImport registers an import given as a slash path, e.g.
// NewClass("java/util/List").
func (r *Resolver) AddImport(c Class) {
	r.imports = append(r.imports, c)
}

func (r *Resolver) AddNestedClass(c Class) {
	r.nested = append(r.nested, c)
}

func (r *Resolver) Imports() []Class {
	return r.imports
}

func (r *Resolver) NestedClasses() []Class {
	return r.nested
}

// Resolve maps a class name to a fully-qualified class. Lookup order: the
// unit's own and nested classes, imports, outer-class imports for dotted
// references, java.lang, and finally the unit's package. A name that
// matches nothing is assumed to live in the same package.
func (r *Resolver) Resolve(name string) (Class, error) {
	if strings.Contains(name, "/") {
		return NewClass(name), nil
	}

	dollarName := strings.ReplaceAll(name, ".", "$")
	if name == r.class.Name() || name == r.class.FullNameWithSlashes() {
		return r.class, nil
	}
	for _, c := range r.nested {
		if name == c.Name() || name == c.NestedName() || dollarName == c.Name() {
			return c, nil
		}
	}

	for _, c := range r.imports {
		path := c.FullNameWithSlashes()
		if !strings.HasSuffix(path, "/"+name) {
			continue
		}
		components := strings.Split(path, "/")
		if len(components) > 2 && startsUpper(components[len(components)-2]) {
			return Class{}, &InnerClassImportError{Import: path, Name: name}
		}
		return c, nil
	}

	if strings.Contains(name, ".") {
		if !startsUpper(name) {
			return NewClass(strings.ReplaceAll(name, ".", "/")), nil
		}
		components := strings.Split(name, ".")
		outer := strings.Join(components[:len(components)-1], "/")
		inner := components[len(components)-1]
		for _, c := range r.imports {
			if strings.HasSuffix(c.FullNameWithSlashes(), "/"+outer) {
				return c.MakeNested(inner), nil
			}
		}
		name = dollarName
	}

	if isJavaLangClass(name) {
		return NewClass("java/lang/" + name), nil
	}

	if pkg := r.Package(); pkg != "" {
		return NewClass(pkg + "/" + name), nil
	}
	return NewClass(name), nil
}

// Descriptor resolves a textual type such as "String[]" or "List<Foo>" to
// its JNI descriptor.
func (r *Resolver) Descriptor(typeText string) (string, error) {
	typeText = strings.TrimSpace(typeText)
	prefix := ""
	for strings.HasSuffix(typeText, "[]") {
		prefix += "["
		typeText = strings.TrimSpace(strings.TrimSuffix(typeText, "[]"))
	}
	if i := strings.IndexByte(typeText, '<'); i >= 0 {
		typeText = typeText[:i]
	}
	if d, ok := primitiveDescriptors[typeText]; ok {
		return prefix + d, nil
	}
	c, err := r.Resolve(typeText)
	if err != nil {
		return "", err
	}
	return prefix + "L" + c.FullNameWithSlashes() + ";", nil
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
