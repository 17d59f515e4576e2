package java

import (
	"sort"
	"testing"
)

func TestClassNames(t *testing.T) {
	c := NewClass("org/chromium/foo/Outer$Inner")

	t.Run("name", func(t *testing.T) {
		if got := c.Name(); got != "Outer$Inner" {
			t.Errorf("Name() = %q, want %q", got, "Outer$Inner")
		}
	})

	t.Run("nested name", func(t *testing.T) {
		if got := c.NestedName(); got != "Inner" {
			t.Errorf("NestedName() = %q, want %q", got, "Inner")
		}
	})

	t.Run("package", func(t *testing.T) {
		if got := c.PackageName(); got != "org/chromium/foo" {
			t.Errorf("PackageName() = %q, want %q", got, "org/chromium/foo")
		}
	})

	t.Run("dots", func(t *testing.T) {
		if got := c.FullNameWithDots(); got != "org.chromium.foo.Outer.Inner" {
			t.Errorf("FullNameWithDots() = %q, want %q", got, "org.chromium.foo.Outer.Inner")
		}
	})

	t.Run("outer", func(t *testing.T) {
		outer, ok := c.Outer()
		if !ok {
			t.Fatal("Expected nested class to have an outer class")
		}
		if outer != NewClass("org/chromium/foo/Outer") {
			t.Errorf("Outer() = %v, want org/chromium/foo/Outer", outer)
		}
		if _, ok := outer.Outer(); ok {
			t.Error("Expected top-level class to have no outer class")
		}
	})

	t.Run("prefixed", func(t *testing.T) {
		got := NewClass("org/Foo").MakePrefixed("this.is.a.prefix")
		if got.FullNameWithSlashes() != "this/is/a/prefix/org/Foo" {
			t.Errorf("MakePrefixed() = %q", got.FullNameWithSlashes())
		}
	})

	t.Run("structural equality", func(t *testing.T) {
		if NewClass("a/B").MakeNested("C") != NewClass("a/B$C") {
			t.Error("Expected classes with equal paths to be equal")
		}
	})
}

func TestTypeDescriptor(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"int", Int, "I"},
		{"void", Void, "V"},
		{"int array", PrimitiveType("int", 1), "[I"},
		{"boolean matrix", PrimitiveType("boolean", 2), "[[Z"},
		{"string", ClassType(NewClass("java/lang/String"), 0), "Ljava/lang/String;"},
		{"nested array", ClassType(NewClass("a/B$C"), 1), "[La/B$C;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Descriptor(); got != tt.want {
				t.Errorf("Descriptor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeToCpp(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Int, "jint"},
		{Void, "void"},
		{PrimitiveType("byte", 1), "jbyteArray"},
		{PrimitiveType("byte", 2), "jobjectArray"},
		{ClassType(NewClass("java/lang/String"), 0), "jstring"},
		{ClassType(NewClass("java/lang/String"), 1), "jobjectArray"},
		{ClassType(NewClass("java/lang/Class"), 0), "jclass"},
		{ClassType(NewClass("java/lang/Throwable"), 0), "jthrowable"},
		{ClassType(NewClass("org/Foo"), 0), "jobject"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.ToCpp(); got != tt.want {
				t.Errorf("ToCpp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeDefaultValue(t *testing.T) {
	if got := Void.CppDefaultValue(); got != "" {
		t.Errorf("void default = %q, want empty", got)
	}
	if got := Boolean.CppDefaultValue(); got != "false" {
		t.Errorf("boolean default = %q, want false", got)
	}
	if got := Long.CppDefaultValue(); got != "0" {
		t.Errorf("long default = %q, want 0", got)
	}
	if got := PrimitiveType("int", 1).CppDefaultValue(); got != "nullptr" {
		t.Errorf("int[] default = %q, want nullptr", got)
	}
}

func TestTypeToProxy(t *testing.T) {
	str := ClassType(NewClass("java/lang/String"), 0)
	if got := str.ToProxy(); got.Class != str.Class {
		t.Errorf("String should pass through, got %v", got.Class)
	}

	foo := ClassType(NewClass("org/Foo"), 2)
	got := foo.ToProxy()
	if got.Class != ObjectClass || got.ArrayDimensions != 2 {
		t.Errorf("ToProxy() = %v, want java/lang/Object[][]", got)
	}

	if got := PrimitiveType("long", 1).ToProxy(); got.Descriptor() != "[J" {
		t.Errorf("long[] proxy descriptor = %q", got.Descriptor())
	}
}

func TestTypeConstructorsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected PrimitiveType to panic for a class name")
		}
	}()
	PrimitiveType("String", 0)
}

func TestSignatureDescriptor(t *testing.T) {
	str := ClassType(NewClass("java/lang/String"), 0)
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{"void foo()", NewSignature(Void, nil), "()V"},
		{"int foo(String s)", NewSignature(Int, ParamList{{Type: str, Name: "s"}}), "(Ljava/lang/String;)I"},
		{"int[] foo()", NewSignature(PrimitiveType("int", 1), nil), "()[I"},
		{"void foo(long, String[])", NewSignature(Void, ParamList{
			{Type: Long, Name: "a"},
			{Type: ClassType(NewClass("java/lang/String"), 1), Name: "b"},
		}), "(J[Ljava/lang/String;)V"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sig.Descriptor(); got != tt.want {
				t.Errorf("Descriptor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignatureOrdering(t *testing.T) {
	sigs := []Signature{
		NewSignature(Void, ParamList{{Type: Long}}),
		NewSignature(Void, ParamList{{Type: Int}, {Type: Int}}),
		NewSignature(Int, nil),
		NewSignature(Void, ParamList{{Type: Int}}),
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Compare(sigs[j]) < 0 })

	want := []string{"()I", "(I)V", "(II)V", "(J)V"}
	for i, s := range sigs {
		if got := s.Descriptor(); got != want[i] {
			t.Errorf("sigs[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestSignatureToProxy(t *testing.T) {
	sig := NewSignature(
		ClassType(NewClass("org/Foo"), 0),
		ParamList{{Type: ClassType(NewClass("org/Bar"), 1), Name: "bars"}, {Type: Int, Name: "n"}},
	)
	got := sig.ToProxy()
	if got.Descriptor() != "([Ljava/lang/Object;I)Ljava/lang/Object;" {
		t.Errorf("ToProxy().Descriptor() = %q", got.Descriptor())
	}
	if got.Params[0].Name != "bars" {
		t.Errorf("Expected parameter names to survive, got %q", got.Params[0].Name)
	}
	if sig.Params[0].Type.Class != NewClass("org/Bar") {
		t.Error("ToProxy must not modify the receiver")
	}
}
