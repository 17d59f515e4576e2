package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jnizero/java"
	"github.com/dhamidi/jnizero/jni"
)

type JSONEncoder struct {
	w        io.Writer
	bindings *jni.Bindings
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(b *jni.Bindings) error {
	e.bindings = b
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildBindingsData(), "", "  ")
}

type jsonBindings struct {
	Filename        string               `json:"filename,omitempty"`
	Class           string               `json:"class"`
	Namespace       string               `json:"namespace,omitempty"`
	Module          string               `json:"module,omitempty"`
	ProxyInterface  string               `json:"proxyInterface,omitempty"`
	Natives         []jsonNative         `json:"natives,omitempty"`
	CalledByNatives []jsonCalledByNative `json:"calledByNatives,omitempty"`
	Constants       []jsonConstant       `json:"constants,omitempty"`
}

type jsonNative struct {
	Name            string          `json:"name"`
	CppName         string          `json:"cppName"`
	Kind            string          `json:"kind"`
	ReturnType      jsonType        `json:"returnType"`
	Parameters      []jsonParameter `json:"parameters,omitempty"`
	Descriptor      string          `json:"descriptor"`
	Modifiers       []string        `json:"modifiers,omitempty"`
	NativeClass     string          `json:"nativeClass,omitempty"`
	ProxyName       string          `json:"proxyName,omitempty"`
	HashedProxyName string          `json:"hashedProxyName,omitempty"`
	MethodIDVarName string          `json:"methodIdVarName"`
}

type jsonCalledByNative struct {
	Name            string          `json:"name"`
	JavaClass       string          `json:"javaClass,omitempty"`
	ReturnType      jsonType        `json:"returnType"`
	Parameters      []jsonParameter `json:"parameters,omitempty"`
	Descriptor      string          `json:"descriptor"`
	Modifiers       []string        `json:"modifiers,omitempty"`
	MethodIDVarName string          `json:"methodIdVarName"`
}

type jsonParameter struct {
	Name string   `json:"name,omitempty"`
	Type jsonType `json:"type"`
}

type jsonType struct {
	Name       string `json:"name"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

type jsonConstant struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

func (e *JSONEncoder) buildBindingsData() jsonBindings {
	b := e.bindings
	data := jsonBindings{
		Filename:  b.Filename,
		Class:     b.Class.FullNameWithSlashes(),
		Namespace: b.Namespace,
		Module:    b.ModuleName,
	}
	if !b.ProxyInterface.IsZero() {
		data.ProxyInterface = b.ProxyInterface.FullNameWithSlashes()
	}
	for _, n := range b.Natives {
		data.Natives = append(data.Natives, jsonNative{
			Name:            n.Name,
			CppName:         n.CppName,
			Kind:            string(n.Kind),
			ReturnType:      buildType(n.ReturnType()),
			Parameters:      buildParameters(n.Params()),
			Descriptor:      n.Signature.Descriptor(),
			Modifiers:       nativeModifiers(n),
			NativeClass:     n.P0Type,
			ProxyName:       n.ProxyName,
			HashedProxyName: n.HashedProxyName,
			MethodIDVarName: n.MethodIDVarName,
		})
	}
	for _, c := range b.CalledByNatives {
		data.CalledByNatives = append(data.CalledByNatives, jsonCalledByNative{
			Name:            c.Name,
			JavaClass:       c.JavaClassName,
			ReturnType:      buildType(c.ReturnType()),
			Parameters:      buildParameters(c.Params()),
			Descriptor:      c.JNIDescriptor(),
			Modifiers:       calledByNativeModifiers(c),
			MethodIDVarName: c.MethodIDVarName,
		})
	}
	for _, c := range b.ConstantFields {
		data.Constants = append(data.Constants, jsonConstant{Name: c.Name, Value: c.Value})
	}
	return data
}

func buildType(t java.Type) jsonType {
	return jsonType{Name: t.NonArrayFullName(), ArrayDepth: t.ArrayDimensions}
}

func buildParameters(params java.ParamList) []jsonParameter {
	result := make([]jsonParameter, len(params))
	for i, p := range params {
		result[i] = jsonParameter{Name: p.Name, Type: buildType(p.Type)}
	}
	return result
}

func nativeModifiers(n *jni.NativeMethod) []string {
	var mods []string
	if n.Static {
		mods = append(mods, "static")
	}
	if n.IsProxy {
		mods = append(mods, "proxy")
	}
	if n.IsTestOnly {
		mods = append(mods, "testonly")
	}
	return mods
}

func calledByNativeModifiers(c *jni.CalledByNative) []string {
	var mods []string
	if c.Static {
		mods = append(mods, "static")
	}
	if c.IsConstructor {
		mods = append(mods, "constructor")
	}
	if c.Unchecked {
		mods = append(mods, "unchecked")
	}
	if c.SystemClass {
		mods = append(mods, "system")
	}
	return mods
}
