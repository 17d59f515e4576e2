package java

import (
	"errors"
	"testing"
)

func newTestResolver() *Resolver {
	r := NewResolver(NewClass("org/chromium/foo/Outer"))
	r.AddNestedClass(NewClass("org/chromium/foo/Outer$Inner"))
	r.AddImport(NewClass("org/chromium/bar/Imported"))
	r.AddImport(NewClass("org/chromium/bar/Parent"))
	r.AddImport(NewClass("org/chromium/bar/Parent/Child"))
	r.AddImport(NewClass("org/chromium/baz/String"))
	return r
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Outer", "org/chromium/foo/Outer"},
		{"Inner", "org/chromium/foo/Outer$Inner"},
		{"Outer.Inner", "org/chromium/foo/Outer$Inner"},
		{"Outer$Inner", "org/chromium/foo/Outer$Inner"},
		{"Imported", "org/chromium/bar/Imported"},
		{"Parent.Nested", "org/chromium/bar/Parent$Nested"},
		{"Object", "java/lang/Object"},
		{"Runnable", "java/lang/Runnable"},
		{"SamePackage", "org/chromium/foo/SamePackage"},
		{"Unknown.Thing", "org/chromium/foo/Unknown$Thing"},
		{"java.util.List", "java/util/List"},
		{"org.chromium.Foo$Bar", "org/chromium/Foo$Bar"},
		{"java/lang/Integer", "java/lang/Integer"},
	}
	r := newTestResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.name)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.name, err)
			}
			if got.FullNameWithSlashes() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.name, got.FullNameWithSlashes(), tt.want)
			}
		})
	}
}

func TestResolveImportBeatsJavaLang(t *testing.T) {
	r := newTestResolver()
	got, err := r.Resolve("String")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.FullNameWithSlashes() != "org/chromium/baz/String" {
		t.Errorf("Resolve(String) = %q, want the explicit import", got.FullNameWithSlashes())
	}
}

func TestResolveJavaLangBeatsSamePackage(t *testing.T) {
	r := NewResolver(NewClass("org/chromium/foo/Outer"))
	got, err := r.Resolve("Integer")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.FullNameWithSlashes() != "java/lang/Integer" {
		t.Errorf("Resolve(Integer) = %q, want java/lang/Integer", got.FullNameWithSlashes())
	}
}

func TestResolveInnerClassImport(t *testing.T) {
	r := newTestResolver()
	_, err := r.Resolve("Child")
	if err == nil {
		t.Fatal("Expected an error for a directly imported inner class")
	}
	var importErr *InnerClassImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("Expected *InnerClassImportError, got %T", err)
	}
	if importErr.Import != "org/chromium/bar/Parent/Child" {
		t.Errorf("Import = %q", importErr.Import)
	}
}

func TestResolveDefaultPackage(t *testing.T) {
	r := NewResolver(NewClass("Toplevel"))
	got, err := r.Resolve("Helper")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.FullNameWithSlashes() != "Helper" {
		t.Errorf("Resolve(Helper) = %q, want Helper", got.FullNameWithSlashes())
	}
}

func TestResolverDescriptor(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"int", "I"},
		{"void", "V"},
		{"int[]", "[I"},
		{"String[][]", "[[Lorg/chromium/baz/String;"},
		{"Object[][]", "[[Ljava/lang/Object;"},
		{"List<String>", "Lorg/chromium/foo/List;"},
		{"Imported<Foo>[]", "[Lorg/chromium/bar/Imported;"},
		{"  long ", "J"},
	}
	r := newTestResolver()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := r.Descriptor(tt.text)
			if err != nil {
				t.Fatalf("Descriptor(%q) error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Descriptor(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
