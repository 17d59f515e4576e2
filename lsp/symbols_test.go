package lsp

import (
	"context"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jnizero/jni"
)

const symbolsSource = `package org.chromium.foo;

class Foo {
    @CalledByNative
    Foo(int size) {}

    @CalledByNative
    static int add(int a, String b) {
        return 0;
    }

    @CalledByNative
    static int add(int a) {
        return 0;
    }

    private native void nativeDestroy(long nativeFooImpl);

    @NativeMethods
    interface Natives {
        void init(Foo self);
    }
}
`

func TestDocumentSymbols(t *testing.T) {
	symbols, err := DocumentSymbols(context.Background(), "/src/org/chromium/foo/Foo.java", symbolsSource, jni.Options{})
	if err != nil {
		t.Fatalf("DocumentSymbols error: %v", err)
	}

	type entry struct {
		name   string
		kind   protocol.SymbolKind
		line   protocol.UInteger
		detail string
	}
	want := []entry{
		{"Foo", protocol.SymbolKindConstructor, 4, "(I)V"},
		{"add", protocol.SymbolKindMethod, 7, "(ILjava/lang/String;)I"},
		{"add", protocol.SymbolKindMethod, 12, "(I)I"},
		{"nativeDestroy", protocol.SymbolKindFunction, 16, "Java_org_chromium_foo_Foo_nativeDestroy"},
		{"init", protocol.SymbolKindFunction, 20, "Java_org_chromium_base_natives_GEN_1JNI_org_1chromium_1foo_1Foo_1init"},
	}
	if len(symbols) != len(want) {
		t.Fatalf("got %d symbols, want %d: %+v", len(symbols), len(want), symbols)
	}
	for i, w := range want {
		s := symbols[i]
		got := entry{s.Name, s.Kind, s.SelectionRange.Start.Line, ""}
		if s.Detail != nil {
			got.detail = *s.Detail
		}
		if got != w {
			t.Errorf("symbol %d = %+v, want %+v", i, got, w)
		}
		if s.Range.Start.Line > s.SelectionRange.Start.Line || s.Range.End.Line < s.SelectionRange.End.Line {
			t.Errorf("symbol %d: range %+v does not contain selection %+v", i, s.Range, s.SelectionRange)
		}
	}
}

func TestDocumentSymbolsParseError(t *testing.T) {
	_, err := DocumentSymbols(context.Background(), "/src/p/Other.java", "package p;\nclass C {\n}\n", jni.Options{})
	if err == nil {
		t.Error("DocumentSymbols succeeded for a mismatched class name")
	}
}
