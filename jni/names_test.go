package jni

import (
	"testing"

	"github.com/dhamidi/jnizero/java"
)

func TestEscapeClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"org/chromium/Foo", "org_chromium_Foo"},
		{"org/chromium/jni_generator/Foo", "org_chromium_jni_1generator_Foo"},
		{"org/chromium/Foo$Bar", "org_chromium_Foo_00024Bar"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := EscapeClassName(tt.in); got != tt.want {
				t.Errorf("EscapeClassName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMangledType(t *testing.T) {
	tests := []struct {
		name string
		t    java.Type
		want string
	}{
		{"int", java.Int, "I"},
		{"int array", java.PrimitiveType("int", 1), "AI"},
		{"int matrix", java.PrimitiveType("int", 2), "AI"},
		{"string", java.ClassType(java.NewClass("java/lang/String"), 0), "JLS"},
		{"string array", java.ClassType(java.NewClass("java/lang/String"), 1), "LJLS"},
		{"nested", java.ClassType(java.NewClass("org/chromium/Foo$Bar"), 0), "OCFB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MangledType(tt.t); got != tt.want {
				t.Errorf("MangledType(%s) = %q, want %q", tt.t.Descriptor(), got, tt.want)
			}
		})
	}
}

func TestMangleOverloads(t *testing.T) {
	newCall := func(name string, param java.Type) *CalledByNative {
		c, err := NewCalledByNative(CalledByNativeSpec{
			Name:       name,
			ReturnType: java.Void,
			Params:     java.ParamList{{Type: param, Name: "a"}},
		})
		if err != nil {
			t.Fatalf("NewCalledByNative error: %v", err)
		}
		return c
	}

	fooInt := newCall("foo", java.Int)
	fooLong := newCall("foo", java.Long)
	single := newCall("single", java.Int)
	MangleCalledByNatives([]*CalledByNative{fooInt, fooLong, single})

	if fooInt.MethodIDVarName == fooLong.MethodIDVarName {
		t.Errorf("overloads share %q", fooInt.MethodIDVarName)
	}
	if fooInt.MethodIDVarName != "fooV_I" || fooLong.MethodIDVarName != "fooV_J" {
		t.Errorf("mangled names = %q, %q; want fooV_I, fooV_J", fooInt.MethodIDVarName, fooLong.MethodIDVarName)
	}
	if single.MethodIDVarName != "single" {
		t.Errorf("single method name = %q, want %q", single.MethodIDVarName, "single")
	}
}

func TestMangleOverloadsPerClass(t *testing.T) {
	outer, _ := NewCalledByNative(CalledByNativeSpec{Name: "foo", ReturnType: java.Void})
	inner, _ := NewCalledByNative(CalledByNativeSpec{Name: "foo", ReturnType: java.Void, JavaClassName: "Inner"})
	MangleCalledByNatives([]*CalledByNative{outer, inner})
	if outer.MethodIDVarName != "foo" || inner.MethodIDVarName != "foo" {
		t.Errorf("names = %q, %q; same name in different classes should not be mangled",
			outer.MethodIDVarName, inner.MethodIDVarName)
	}
}

func TestMangledMethodNamePanicsOnBadName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MangledMethodName did not panic on an invalid name")
		}
	}()
	MangledMethodName("foo-bar", java.NewSignature(java.Void, nil))
}

func TestProxyMethodNames(t *testing.T) {
	class := java.NewClass("org/chromium/example/jni_generator/SampleForTests")

	proxyName, hashed := ProxyMethodNames(class, "init", false)
	if proxyName != "org_chromium_example_jni_1generator_SampleForTests_init" {
		t.Errorf("proxyName = %q", proxyName)
	}
	if hashed != "Mo5zFsNz" {
		t.Errorf("hashed = %q, want %q", hashed, "Mo5zFsNz")
	}

	_, again := ProxyMethodNames(class, "init", false)
	if again != hashed {
		t.Errorf("hash is not stable: %q then %q", hashed, again)
	}
	if _, other := ProxyMethodNames(class, "destroy", false); other == hashed {
		t.Errorf("init and destroy share hash %q", hashed)
	}

	_, testOnly := ProxyMethodNames(class, "isEnabledForTesting", true)
	if testOnly != "M2sbkcFC_ForTesting" {
		t.Errorf("test-only hash = %q, want %q", testOnly, "M2sbkcFC_ForTesting")
	}
}

func TestGenJNIClass(t *testing.T) {
	tests := []struct {
		name          string
		short         bool
		moduleName    string
		packagePrefix string
		want          string
	}{
		{"default", false, "", "", "org/chromium/base/natives/GEN_JNI"},
		{"short", true, "", "", "J/N"},
		{"module", false, "module", "", "org/chromium/base/natives/module_GEN_JNI"},
		{"prefixed short module", true, "module", "org.prefix", "org/prefix/J/module_N"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenJNIClass(tt.short, tt.moduleName, tt.packagePrefix).FullNameWithSlashes()
			if got != tt.want {
				t.Errorf("GenJNIClass() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStubName(t *testing.T) {
	class := java.NewClass("org/chromium/Foo")
	legacy, err := NewNativeMethod(NativeMethodSpec{Name: "Bar", ReturnType: java.Void, Static: true})
	if err != nil {
		t.Fatalf("NewNativeMethod error: %v", err)
	}
	genJNI := GenJNIClass(false, "", "")
	if got := StubName(legacy, class, genJNI, false); got != "Java_org_chromium_Foo_nativeBar" {
		t.Errorf("legacy stub = %q", got)
	}

	proxy, err := NewNativeMethod(NativeMethodSpec{Name: "bar", ReturnType: java.Void, IsProxy: true, Class: class})
	if err != nil {
		t.Fatalf("NewNativeMethod error: %v", err)
	}
	want := "Java_org_chromium_base_natives_GEN_1JNI_org_1chromium_1Foo_1bar"
	if got := StubName(proxy, class, genJNI, false); got != want {
		t.Errorf("proxy stub = %q, want %q", got, want)
	}
	want = "Java_J_N_MpPQmTNg"
	if got := StubName(proxy, class, GenJNIClass(true, "", ""), true); got != want {
		t.Errorf("hashed proxy stub = %q, want %q", got, want)
	}
}
