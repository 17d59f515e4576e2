package jni

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/jnizero/java"
)

const samplePackage = "org/chromium/example/jni_generator/"

func parseSample(t *testing.T) *ParsedFile {
	t.Helper()
	parsed, err := ParseFile(filepath.Join("testdata", "SampleForTests.java"), Options{})
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	return parsed
}

func TestParseSourceMinimal(t *testing.T) {
	parsed, err := ParseSource("C.java", "package p; class C { public static native int nativeFoo(int x); }", Options{})
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	if got := parsed.Class.FullNameWithSlashes(); got != "p/C" {
		t.Errorf("class = %q, want %q", got, "p/C")
	}
	if len(parsed.NonProxyNatives) != 1 {
		t.Fatalf("got %d natives, want 1", len(parsed.NonProxyNatives))
	}
	n := parsed.NonProxyNatives[0]
	if n.Name != "Foo" {
		t.Errorf("Name = %q, want %q", n.Name, "Foo")
	}
	if !n.Static {
		t.Error("Static = false, want true")
	}
	if n.IsProxy {
		t.Error("IsProxy = true, want false")
	}
	if len(n.Params()) != 1 || n.Params()[0].Type.Primitive != "int" {
		t.Errorf("Params = %v, want a single int", n.Params())
	}
	if n.Kind != NativeKindFunction {
		t.Errorf("Kind = %q, want %q", n.Kind, NativeKindFunction)
	}
	if got := n.Signature.Descriptor(); got != "(I)I" {
		t.Errorf("descriptor = %q, want %q", got, "(I)I")
	}
}

func TestParseSample(t *testing.T) {
	parsed := parseSample(t)

	t.Run("class", func(t *testing.T) {
		if got := parsed.Class.FullNameWithSlashes(); got != samplePackage+"SampleForTests" {
			t.Errorf("class = %q", got)
		}
		var nested []string
		for _, c := range parsed.Resolver.NestedClasses() {
			nested = append(nested, c.NestedName())
		}
		if want := []string{"InnerClass", "Natives"}; !reflect.DeepEqual(nested, want) {
			t.Errorf("nested = %v, want %v", nested, want)
		}
		if parsed.JNINamespace != "base::android" {
			t.Errorf("JNINamespace = %q, want %q", parsed.JNINamespace, "base::android")
		}
	})

	t.Run("proxy interface", func(t *testing.T) {
		if got := parsed.ProxyInterface.FullNameWithSlashes(); got != samplePackage+"SampleForTests$Natives" {
			t.Errorf("ProxyInterface = %q", got)
		}
		if parsed.ProxyVisibility != "" {
			t.Errorf("ProxyVisibility = %q, want empty", parsed.ProxyVisibility)
		}
		var names []string
		for _, m := range parsed.ProxyMethods {
			names = append(names, m.Name)
		}
		if want := []string{"destroy", "init", "isEnabledForTesting", "method"}; !reflect.DeepEqual(names, want) {
			t.Fatalf("proxy methods = %v, want %v", names, want)
		}
		if got := parsed.ProxyMethods[3].NativeClassName; got != "CPPClass" {
			t.Errorf("method NativeClassName = %q, want %q", got, "CPPClass")
		}
		want := "(L" + samplePackage + "SampleForTests;)J"
		if got := parsed.ProxyMethods[1].Signature().Descriptor(); got != want {
			t.Errorf("init descriptor = %q, want %q", got, want)
		}
	})

	t.Run("natives", func(t *testing.T) {
		if len(parsed.NonProxyNatives) != 2 {
			t.Fatalf("got %d natives, want 2", len(parsed.NonProxyNatives))
		}
		foo, getValue := parsed.NonProxyNatives[0], parsed.NonProxyNatives[1]
		if foo.Name != "Foo" || !foo.Static {
			t.Errorf("first native = %s static=%v, want static Foo", foo.Name, foo.Static)
		}
		if getValue.Name != "GetValue" || getValue.Static {
			t.Errorf("second native = %s static=%v, want instance GetValue", getValue.Name, getValue.Static)
		}
		if getValue.Kind != NativeKindMethod {
			t.Errorf("GetValue kind = %q, want %q", getValue.Kind, NativeKindMethod)
		}
		if getValue.P0Type != "CPPClass::InnerClass" {
			t.Errorf("GetValue P0Type = %q, want %q", getValue.P0Type, "CPPClass::InnerClass")
		}
		if got := getValue.Signature.Descriptor(); got != "(JLandroid/graphics/Rect;)D" {
			t.Errorf("GetValue descriptor = %q", got)
		}
	})

	t.Run("called by natives", func(t *testing.T) {
		type entry struct {
			class, name, varName, descriptor string
		}
		want := []entry{
			{"", "Constructor", "Constructor", "(I)V"},
			{"", "bar", "barV_I", "(I)V"},
			{"", "bar", "barV_J", "(J)V"},
			{"", "getGrid", "getGrid", "([Ljava/lang/String;)[[I"},
			{"", "getMap", "getMap", "()Ljava/util/Map;"},
			{"", "getRect", "getRect", "()Landroid/graphics/Rect;"},
			{"InnerClass", "getInnerValue", "getInnerValue", "(L" + samplePackage + "SampleForTests$InnerClass;)F"},
		}
		var got []entry
		for _, c := range parsed.CalledByNatives {
			got = append(got, entry{c.JavaClassName, c.Name, c.MethodIDVarName, c.JNIDescriptor()})
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("called by natives:\ngot  %v\nwant %v", got, want)
		}

		ctor := parsed.CalledByNatives[0]
		if !ctor.IsConstructor || ctor.JNIName() != "<init>" || ctor.EnvCall() != "NewObject" {
			t.Errorf("constructor = %+v", ctor)
		}
		if rect := parsed.CalledByNatives[5]; !rect.Unchecked {
			t.Error("getRect should be unchecked")
		}
		if getMap := parsed.CalledByNatives[4]; !getMap.Static || getMap.EnvCall() != "CallStaticObjectMethod" {
			t.Errorf("getMap static=%v env call=%q", getMap.Static, getMap.EnvCall())
		}
	})
}

func TestParseDeterministic(t *testing.T) {
	first := parseSample(t)
	second := parseSample(t)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same file twice gave different results")
	}
}

func TestOverloadedCalledByNatives(t *testing.T) {
	source := `package p;
class C {
    @CalledByNative
    void bar(int a) {}
    @CalledByNative
    void bar(String s) {}
}
`
	parsed, err := ParseSource("C.java", source, Options{})
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	if len(parsed.CalledByNatives) != 2 {
		t.Fatalf("got %d called by natives, want 2", len(parsed.CalledByNatives))
	}
	a, b := parsed.CalledByNatives[0].MethodIDVarName, parsed.CalledByNatives[1].MethodIDVarName
	if a == b {
		t.Errorf("overloads share method id name %q", a)
	}
	for _, name := range []string{a, b} {
		if !identifierRe.MatchString(name) {
			t.Errorf("%q is not a valid identifier", name)
		}
	}
}

func TestParseSourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		source   string
		contains []string
	}{
		{
			name:     "class name mismatch",
			filename: "Foo.java",
			source:   "package p;\nclass Bar {}\n",
			contains: []string{`"Bar"`, `"Foo"`, "Foo.java"},
		},
		{
			name:     "missing package",
			filename: "C.java",
			source:   "class C {}\n",
			contains: []string{"package"},
		},
		{
			name:     "no class",
			filename: "C.java",
			source:   "package p;\n",
			contains: []string{"no classes"},
		},
		{
			name:     "multiple native methods interfaces",
			filename: "C.java",
			source: `package p;
class C {
    @NativeMethods
    interface A { void a(); }
    @NativeMethods
    interface B { void b(); }
}
`,
			contains: []string{"multiple @NativeMethods"},
		},
		{
			name:     "empty native methods interface",
			filename: "C.java",
			source: `package p;
class C {
    @NativeMethods
    interface Natives {
    }
}
`,
			contains: []string{"no methods"},
		},
		{
			name:     "multiple namespaces",
			filename: "C.java",
			source: `package p;
@JNINamespace("a")
@JNINamespace("b")
class C {}
`,
			contains: []string{"multiple @JNINamespace"},
		},
		{
			name:     "unparseable called by native",
			filename: "C.java",
			source: `package p;
class C {
    @CalledByNative
    private int mField = 3;
}
`,
			contains: []string{"@CalledByNative"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(tt.filename, tt.source, Options{})
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("error %q does not mention %q", err.Error(), s)
				}
			}
		})
	}
}

func TestUnparseableCalledByNativeContext(t *testing.T) {
	source := "package p;\nclass C {\n    @CalledByNative\n    private int mField = 3;\n}\n"
	_, err := ParseSource("C.java", source, Options{})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	want := []string{"    @CalledByNative", "    private int mField = 3;"}
	if !reflect.DeepEqual(perr.Context, want) {
		t.Errorf("Context = %q, want %q", perr.Context, want)
	}
	if !strings.Contains(perr.Detail(), "private int mField") {
		t.Errorf("Detail() = %q, want the context lines", perr.Detail())
	}
}

func TestUnparseableCalledByNativeOnLastLine(t *testing.T) {
	source := "package p;\nclass C {\n    @CalledByNative"
	_, err := ParseSource("C.java", source, Options{})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	want := []string{"    @CalledByNative"}
	if !reflect.DeepEqual(perr.Context, want) {
		t.Errorf("Context = %q, want %q", perr.Context, want)
	}
}

func TestInnerClassImport(t *testing.T) {
	source := `package p;
import q.Outer.Inner;
class C {
    private static native void nativeUse(Inner inner);
}
`
	_, err := ParseSource("C.java", source, Options{})
	var importErr *java.InnerClassImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("error = %v, want *java.InnerClassImportError", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Filename != "C.java" {
		t.Errorf("error = %v, want a ParseError naming C.java", err)
	}
}

func TestOuterClassImport(t *testing.T) {
	source := `package p;
import q.Outer;
class C {
    private static native void nativeUse(Outer.Inner inner);
}
`
	parsed, err := ParseSource("C.java", source, Options{})
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	if got := parsed.NonProxyNatives[0].Signature.Descriptor(); got != "(Lq/Outer$Inner;)V" {
		t.Errorf("descriptor = %q, want %q", got, "(Lq/Outer$Inner;)V")
	}
}

func TestAnnotationMentioningClassIsIgnored(t *testing.T) {
	source := `package p;
@Description("a helper class Fake")
class Real {}
`
	parsed, err := ParseSource("Real.java", source, Options{})
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	if got := parsed.Class.Name(); got != "Real" {
		t.Errorf("class = %q, want %q", got, "Real")
	}
}

func TestPackagePrefix(t *testing.T) {
	source := `package p;
class C {
    @CalledByNative
    static C create(Inner inner) { return null; }
    static class Inner {}
}
`
	parsed, err := ParseSource("C.java", source, Options{PackagePrefix: "org.prefix"})
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	if got := parsed.Class.FullNameWithSlashes(); got != "org/prefix/p/C" {
		t.Errorf("class = %q, want %q", got, "org/prefix/p/C")
	}
	want := "(Lorg/prefix/p/C$Inner;)Lorg/prefix/p/C;"
	if got := parsed.CalledByNatives[0].JNIDescriptor(); got != want {
		t.Errorf("descriptor = %q, want %q", got, want)
	}
}

func TestParseFileRejectsKotlin(t *testing.T) {
	if _, err := ParseFile("Foo.kt", Options{}); err == nil {
		t.Error("ParseFile(Foo.kt) succeeded, want an error")
	}
}
