package java

import (
	"strings"
)

type Param struct {
	Type Type
	Name string
}

func (p Param) String() string {
	if p.Name != "" {
		return p.Type.String() + " " + p.Name
	}
	return p.Type.String()
}

type ParamList []Param

func (l ParamList) Types() []Type {
	types := make([]Type, len(l))
	for i, p := range l {
		types[i] = p.Type
	}
	return types
}

func (l ParamList) String() string {
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Signature is a method's return type and ordered parameters.
type Signature struct {
	ReturnType Type
	Params     ParamList
}

func NewSignature(returnType Type, params ParamList) Signature {
	return Signature{ReturnType: returnType, Params: params}
}

func (s Signature) ParamTypes() []Type {
	return s.Params.Types()
}

// Descriptor returns the JNI method descriptor, e.g. "(Ljava/lang/String;)I".
func (s Signature) Descriptor() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range s.Params {
		sb.WriteString(p.Type.Descriptor())
	}
	sb.WriteByte(')')
	sb.WriteString(s.ReturnType.Descriptor())
	return sb.String()
}

func (s Signature) WithReturnType(t Type) Signature {
	s.ReturnType = t
	return s
}

// ToProxy rewrites every type with Type.ToProxy, keeping parameter names.
func (s Signature) ToProxy() Signature {
	params := make(ParamList, len(s.Params))
	for i, p := range s.Params {
		params[i] = Param{Type: p.Type.ToProxy(), Name: p.Name}
	}
	return Signature{ReturnType: s.ReturnType.ToProxy(), Params: params}
}

// Compare orders signatures by return type, then parameter types pairwise,
// then parameter count.
func (s Signature) Compare(o Signature) int {
	if c := s.ReturnType.Compare(o.ReturnType); c != 0 {
		return c
	}
	for i := 0; i < len(s.Params) && i < len(o.Params); i++ {
		if c := s.Params[i].Type.Compare(o.Params[i].Type); c != 0 {
			return c
		}
	}
	return len(s.Params) - len(o.Params)
}

func (s Signature) String() string {
	return s.ReturnType.String() + " (" + s.Params.String() + ")"
}
