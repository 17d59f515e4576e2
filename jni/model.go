package jni

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/jnizero/java"
)

// Options controls extraction and assembly.
type Options struct {
	// IncludeTestOnly keeps natives whose names end in ForTest or ForTesting.
	IncludeTestOnly bool
	// PackagePrefix is a dotted package prepended to the extracted class.
	PackagePrefix string
	// Namespace is the C++ namespace used when the source has no
	// @JNINamespace annotation.
	Namespace string
	// UncheckedExceptions marks bytecode-derived called-by-natives as not
	// checking for pending exceptions.
	UncheckedExceptions bool
}

type NativeKind string

const (
	// NativeKindFunction natives are implemented by a free C++ function.
	NativeKindFunction NativeKind = "function"
	// NativeKindMethod natives carry a C++ object pointer in their first
	// parameter and are dispatched to a member function.
	NativeKindMethod NativeKind = "method"
)

// NativeMethodSpec holds everything needed to build a NativeMethod.
type NativeMethodSpec struct {
	Name       string
	ReturnType java.Type
	Params     java.ParamList
	Static     bool
	IsProxy    bool
	// Class is the declaring class; required for proxies.
	Class java.Class
	// NativeClassName comes from @NativeClassQualifiedName.
	NativeClassName string
	// P0Type overrides the native handle type inference.
	P0Type string
}

// NativeMethod is a C++ entry point declared on the Java side, either in a
// @NativeMethods interface (proxy) or with the native keyword.
type NativeMethod struct {
	Name           string
	CppName        string
	Signature      java.Signature
	ProxySignature java.Signature
	Static         bool
	IsProxy        bool
	IsTestOnly     bool
	Kind           NativeKind
	// P0Type is the C++ class behind the leading long handle of
	// method-kind natives.
	P0Type          string
	ProxyName       string
	HashedProxyName string
	MethodIDVarName string
}

func NewNativeMethod(spec NativeMethodSpec) (*NativeMethod, error) {
	if spec.Name == "" {
		return nil, errors.New("native method without a name")
	}
	if !isValidType(spec.ReturnType) {
		return nil, fmt.Errorf("native method %s has no return type", spec.Name)
	}
	if spec.IsProxy && spec.Class.IsZero() {
		return nil, fmt.Errorf("proxy native %s has no declaring class", spec.Name)
	}

	n := &NativeMethod{
		Name:       spec.Name,
		CppName:    Capitalize(spec.Name),
		Signature:  java.NewSignature(spec.ReturnType, spec.Params),
		Static:     spec.Static || spec.IsProxy,
		IsProxy:    spec.IsProxy,
		IsTestOnly: isTestOnlyName(spec.Name),
		Kind:       NativeKindFunction,
	}
	if n.IsProxy {
		n.ProxySignature = n.Signature.ToProxy()
		n.ProxyName, n.HashedProxyName = ProxyMethodNames(spec.Class, spec.Name, n.IsTestOnly)
	} else {
		n.ProxySignature = n.Signature
	}

	if len(spec.Params) > 0 {
		first := spec.Params[0]
		if first.Type.IsPrimitive() && first.Type.Primitive == "long" && strings.HasPrefix(first.Name, "native") {
			n.Kind = NativeKindMethod
			switch {
			case spec.P0Type != "":
				n.P0Type = spec.P0Type
			case spec.NativeClassName != "":
				n.P0Type = spec.NativeClassName
			default:
				n.P0Type = strings.TrimPrefix(first.Name, "native")
			}
		}
	}
	return n, nil
}

func (n *NativeMethod) ReturnType() java.Type {
	return n.Signature.ReturnType
}

func (n *NativeMethod) Params() java.ParamList {
	return n.Signature.Params
}

func (n *NativeMethod) overloadKey() (string, string) { return "", n.Name }
func (n *NativeMethod) signature() java.Signature    { return n.Signature }
func (n *NativeMethod) setMethodIDVarName(s string)  { n.MethodIDVarName = s }

// CalledByNativeSpec holds everything needed to build a CalledByNative.
type CalledByNativeSpec struct {
	Name       string
	ReturnType java.Type
	Params     java.ParamList
	Static     bool
	Unchecked  bool
	// SystemClass is set for bytecode-derived methods; their stubs may go
	// unused.
	SystemClass   bool
	IsConstructor bool
	// JavaClassName names the nested class declaring the method, empty for
	// the outer class.
	JavaClassName string
	// Descriptor is the JNI descriptor as reported by javap.
	Descriptor string
}

// CalledByNative is a Java method that native code calls through a
// generated stub.
type CalledByNative struct {
	Name            string
	Signature       java.Signature
	Static          bool
	Unchecked       bool
	SystemClass     bool
	IsConstructor   bool
	JavaClassName   string
	Descriptor      string
	MethodIDVarName string
}

// ConstructorName is the name given to constructor bindings.
const ConstructorName = "Constructor"

func NewCalledByNative(spec CalledByNativeSpec) (*CalledByNative, error) {
	if spec.Name == "" {
		return nil, errors.New("called-by-native method without a name")
	}
	if !isValidType(spec.ReturnType) {
		return nil, fmt.Errorf("called-by-native method %s has no return type", spec.Name)
	}
	if spec.IsConstructor && spec.Name != ConstructorName {
		return nil, fmt.Errorf("constructor binding must be named %s, got %s", ConstructorName, spec.Name)
	}
	return &CalledByNative{
		Name:          spec.Name,
		Signature:     java.NewSignature(spec.ReturnType, spec.Params),
		Static:        spec.Static,
		Unchecked:     spec.Unchecked,
		SystemClass:   spec.SystemClass,
		IsConstructor: spec.IsConstructor,
		JavaClassName: spec.JavaClassName,
		Descriptor:    spec.Descriptor,
	}, nil
}

func (c *CalledByNative) ReturnType() java.Type {
	return c.Signature.ReturnType
}

func (c *CalledByNative) Params() java.ParamList {
	return c.Signature.Params
}

// JNIName is the method name passed to GetMethodID.
func (c *CalledByNative) JNIName() string {
	if c.IsConstructor {
		return "<init>"
	}
	return c.Name
}

// JNIDescriptor is the descriptor passed to GetMethodID. Constructors
// return void at the JNI level.
func (c *CalledByNative) JNIDescriptor() string {
	if c.Descriptor != "" {
		return c.Descriptor
	}
	sig := c.Signature
	if c.IsConstructor {
		sig = sig.WithReturnType(java.Void)
	}
	return sig.Descriptor()
}

// EnvCall is the JNIEnv member used to invoke the method.
func (c *CalledByNative) EnvCall() string {
	if c.IsConstructor {
		return "NewObject"
	}
	call := "Object"
	if rt := c.ReturnType(); rt.IsPrimitive() {
		call = Capitalize(rt.Primitive)
	}
	if c.Static {
		call = "Static" + call
	}
	return "Call" + call + "Method"
}

// StaticCast is the C++ type the jobject result is cast to, if any.
func (c *CalledByNative) StaticCast() string {
	rt := c.ReturnType()
	if rt.IsPrimitive() {
		return ""
	}
	if cpp := rt.ToCpp(); cpp != "jobject" {
		return cpp
	}
	return ""
}

func (c *CalledByNative) overloadKey() (string, string) { return c.JavaClassName, c.Name }
func (c *CalledByNative) signature() java.Signature    { return c.Signature }
func (c *CalledByNative) setMethodIDVarName(s string)  { c.MethodIDVarName = s }

// ConstantField is a public static final int read from bytecode.
type ConstantField struct {
	Name  string
	Value int64
}

// ParsedMethod is a method of a @NativeMethods interface.
type ParsedMethod struct {
	Name            string
	ReturnType      java.Type
	Params          java.ParamList
	NativeClassName string
}

func (m ParsedMethod) Signature() java.Signature {
	return java.NewSignature(m.ReturnType, m.Params)
}

// ParsedFile is everything extracted from one compilation unit.
type ParsedFile struct {
	Filename        string
	Class           java.Class
	Resolver        *java.Resolver
	ProxyMethods    []ParsedMethod
	NonProxyNatives []*NativeMethod
	CalledByNatives []*CalledByNative
	ConstantFields  []ConstantField
	// ProxyInterface is zero when the file has no @NativeMethods interface.
	ProxyInterface  java.Class
	ProxyVisibility string
	// ModuleName comes from @NativeMethods("module").
	ModuleName string
	// JNINamespace comes from @JNINamespace("ns").
	JNINamespace string
}

func isValidType(t java.Type) bool {
	return (t.Primitive != "") != !t.Class.IsZero()
}
