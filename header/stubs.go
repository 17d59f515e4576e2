package header

import (
	"strings"

	"github.com/dhamidi/jnizero/java"
	"github.com/dhamidi/jnizero/jni"
)

type nativeStub struct {
	Return              string
	ReturnDeclaration   string
	Name                string
	ImplMethodName      string
	Params              string
	ParamsInStub        string
	ParamsInCall        string
	PostCall            string
	StubName            string
	Profiling           bool
	OptionalErrorReturn string
	Param0Name          string
	P0Type              string
}

// paramForDeclaration is how a Java value reaches hand-written C++ code.
func paramForDeclaration(t java.Type) string {
	if t.IsPrimitive() {
		return t.ToCpp()
	}
	return "const base::android::JavaParamRef<" + t.ToCpp() + ">&"
}

// paramForCalledByNative is how C++ code hands a value to a Java method.
func paramForCalledByNative(t java.Type) string {
	if t.IsPrimitive() {
		if t.Primitive == "int" {
			return "JniIntWrapper"
		}
		return t.ToCpp()
	}
	return "const base::android::JavaRef<" + t.ToCpp() + ">&"
}

func jcallerParam(n *jni.NativeMethod, forDeclaration bool) string {
	cType := "jobject"
	if n.Static {
		cType = "jclass"
	}
	if forDeclaration {
		cType = "const base::android::JavaParamRef<" + cType + ">&"
	}
	return cType + " jcaller"
}

func javaParamRef(cType, name string) string {
	return "base::android::JavaParamRef<" + cType + ">(env, " + name + ")"
}

func (g *generator) nativeStub(n *jni.NativeMethod) (string, error) {
	params := n.Params()
	isMethod := n.Kind == jni.NativeKindMethod

	var declaration []string
	if !n.Static {
		declaration = append(declaration, jcallerParam(n, true))
	}
	for _, p := range params {
		declaration = append(declaration, paramForDeclaration(p.Type)+" "+p.Name)
	}

	inStub := []string{jcallerParam(n, false)}
	for _, p := range params {
		inStub = append(inStub, p.Type.ToCpp()+" "+p.Name)
	}

	callParams := params
	if isMethod {
		callParams = params[1:]
	}
	inCall := []string{"env"}
	if !n.Static {
		inCall = append(inCall, javaParamRef("jobject", "jcaller"))
	}
	for _, p := range callParams {
		if p.Type.IsPrimitive() {
			inCall = append(inCall, p.Name)
		} else {
			inCall = append(inCall, javaParamRef(p.Type.ToCpp(), p.Name))
		}
	}

	rt := n.ReturnType()
	s := nativeStub{
		Return:            rt.ToCpp(),
		ReturnDeclaration: rt.ToCpp(),
		Name:              n.CppName,
		ImplMethodName:    "JNI_" + g.b.Class.Name() + "_" + n.CppName,
		Params:            strings.Join(declaration, ",\n    "),
		ParamsInStub:      strings.Join(inStub, ",\n    "),
		ParamsInCall:      strings.Join(inCall, ", "),
		StubName:          jni.StubName(n, g.b.Class, g.genJNI, g.opts.UseProxyHash),
		Profiling:         g.opts.EnableProfiling,
	}
	if !rt.IsPrimitive() {
		s.PostCall = ".Release()"
		s.ReturnDeclaration = "base::android::ScopedJavaLocalRef<" + rt.ToCpp() + ">"
	}

	name := "nativeFunction"
	if isMethod {
		name = "nativeMethod"
		if v := rt.CppDefaultValue(); v != "" {
			s.OptionalErrorReturn = ", " + v
		}
		s.Param0Name = params[0].Name
		s.P0Type = n.P0Type
	} else if s.Params != "" {
		s.Params = ", " + s.Params
	}

	out, err := render(name, s)
	if err != nil {
		return "", err
	}
	return RemoveIndentedEmptyLines(out), nil
}

type calledByNativeStub struct {
	JavaClass           string
	MethodIDVarName     string
	FunctionSignature   string
	SystemClass         bool
	FirstParamInCall    string
	OptionalErrorReturn string
	CheckException      string
	MethodIDType        string
	JNIName             string
	JNIDescriptor       string
	Profiling           bool
	ReturnDeclaration   string
	PreCall             string
	EnvCall             string
	MethodIDMemberName  string
	ParamsInCall        string
	PostCall            string
	ReturnClause        string
}

func calledByNativeArgument(p java.Param) string {
	if !p.Type.IsPrimitive() {
		return p.Name + ".obj()"
	}
	if p.Type.Primitive == "int" {
		return "as_jint(" + p.Name + ")"
	}
	return p.Name
}

func (g *generator) calledByNativeStub(c *jni.CalledByNative) (string, error) {
	javaClassOnly := g.b.Class.Name()
	javaClass := g.b.Class.FullNameWithSlashes()
	if c.JavaClassName != "" {
		javaClassOnly = c.JavaClassName
		javaClass += "$" + c.JavaClassName
	}

	s := calledByNativeStub{
		JavaClass:          jni.EscapeClassName(javaClass),
		MethodIDVarName:    c.MethodIDVarName,
		SystemClass:        c.SystemClass,
		FirstParamInCall:   "obj.obj()",
		CheckException:     "Checked",
		MethodIDType:       "INSTANCE",
		JNIName:            c.JNIName(),
		JNIDescriptor:      c.JNIDescriptor(),
		Profiling:          g.opts.EnableProfiling,
		EnvCall:            c.EnvCall(),
		MethodIDMemberName: "call_context.base.method_id",
	}
	firstParamInDeclaration := ", const base::android::JavaRef<jobject>& obj"
	if c.Static || c.IsConstructor {
		firstParamInDeclaration = ""
		s.FirstParamInCall = "clazz"
	}
	if c.Static {
		s.MethodIDType = "STATIC"
	}
	if c.Unchecked {
		s.CheckException = "Unchecked"
		s.MethodIDMemberName = "call_context.method_id"
	}

	var declaration, args []string
	for _, p := range c.Params() {
		declaration = append(declaration, paramForCalledByNative(p.Type)+" "+p.Name)
		args = append(args, calledByNativeArgument(p))
	}
	paramsInDeclaration := ""
	if len(declaration) > 0 {
		paramsInDeclaration = ", " + strings.Join(declaration, ",\n    ")
		s.ParamsInCall = ", " + strings.Join(args, ", ")
	}

	if cast := c.StaticCast(); cast != "" {
		s.PreCall = "static_cast<" + cast + ">("
		s.PostCall = ")"
	}

	rt := c.ReturnType()
	returnType := rt.ToCpp()
	if v := rt.CppDefaultValue(); v != "" {
		s.OptionalErrorReturn = ", " + v
	}
	if returnType != "void" {
		s.PreCall = " " + s.PreCall
		s.ReturnDeclaration = returnType + " ret ="
		if rt.IsPrimitive() {
			s.ReturnClause = "return ret;"
		} else {
			returnType = "base::android::ScopedJavaLocalRef<" + returnType + ">"
			s.ReturnClause = "return " + returnType + "(env, ret);"
		}
	}

	s.FunctionSignature = "static " + returnType + " Java_" + javaClassOnly + "_" + c.MethodIDVarName +
		"(JNIEnv* env" + firstParamInDeclaration + paramsInDeclaration + ")"

	out, err := render("calledByNative", s)
	if err != nil {
		return "", err
	}
	return RemoveIndentedEmptyLines(out), nil
}
