package jni

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jnizero/java"
)

var log = commonlog.GetLogger("jnizero.jni")

var (
	packageRe = regexp.MustCompile(`(?m)^package\s+(\S+?);`)

	classRe = regexp.MustCompile(`(?m)^(.*?)(?:\b(?:public|protected|private)?\b)\s*` +
		`(?:\b(?:static|abstract|final|sealed)\s+)*` +
		`\b(?:class|interface|enum)\s+(\w+?)\b[^"]*?$`)

	// Static and wildcard imports never match.
	importRe = regexp.MustCompile(`(?m)^import\s+([^\s*]+);`)

	proxyInterfaceRe = regexp.MustCompile(`@NativeMethods(?:\(\s*"(?P<module_name>\w+)"\s*\))?[\S\s]+?` +
		`(?P<visibility>public)?\s*\binterface\s*` +
		`(?P<interface_name>\w*)\s*\{(?P<interface_body>[^}]*)\}`)

	// Methods of a @NativeMethods interface need neither the native keyword
	// nor the native prefix.
	interfaceMethodRe = regexp.MustCompile(`(?s)\s*(.*?)\s+(\w+)\((.*?)\);`)

	publicRe = regexp.MustCompile(`\bpublic\s`)

	nativeRe = regexp.MustCompile(`(?s)(@NativeClassQualifiedName\("(?P<native_class_name>\S*?)"\)\s+)?` +
		`(?P<qualifiers>\w+\s\w+|\w+|\s+)\s*native\s+` +
		`(?P<return_type>\S*)\s+` +
		`(?P<name>native\w+)\((?P<params>.*?)\);`)

	calledByNativeRe = regexp.MustCompile(`@CalledByNative((?P<unchecked>(?:Unchecked)?|ForTesting))` +
		`(?:\("(?P<annotation>.*)"\))?` +
		`(?:\s+@\w+(?:\(.*\))?)*` +
		`\s+(?P<prefix>((private|protected|public|static|abstract|final|default|synchronized)\s*)*)` +
		`(?:\s*@\w+)?` +
		`\s*(?P<return_type>\S*?)` +
		`\s*(?P<name>\w+)` +
		`\s*\((?P<params>[^\)]*)\)`)

	jniNamespaceRe = regexp.MustCompile(`@JNINamespace\("(.*?)"\)`)
)

// ParseFile reads and extracts one Java source file.
func ParseFile(filename string, opts Options) (*ParsedFile, error) {
	if strings.HasSuffix(filename, ".kt") {
		return nil, fmt.Errorf("found %s, but Kotlin is not supported", filename)
	}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return ParseSource(filename, string(contents), opts)
}

// ParseSource extracts natives and called-by-native methods from the text of
// one Java compilation unit. filename is used to check the class name and in
// error messages; it is not read.
func ParseSource(filename, contents string, opts Options) (*ParsedFile, error) {
	parsed, err := parseSource(filename, contents, opts)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) && perr.Filename == "" {
			perr.Filename = filename
		}
		return nil, err
	}
	log.Debugf("parsed %s: %d proxy methods, %d natives, %d called by natives",
		filename, len(parsed.ProxyMethods), len(parsed.NonProxyNatives), len(parsed.CalledByNatives))
	return parsed, nil
}

func parseSource(filename, contents string, opts Options) (*ParsedFile, error) {
	contents = RemoveComments(contents)
	contents = RemoveGenerics(contents)

	outer, nested, err := parseClasses(contents)
	if err != nil {
		return nil, err
	}

	expected := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if outer.Name() != expected {
		return nil, newParseError(fmt.Sprintf("found class %q but expected %q", outer.Name(), expected))
	}

	if opts.PackagePrefix != "" {
		outer = outer.MakePrefixed(opts.PackagePrefix)
		for i, c := range nested {
			nested[i] = c.MakePrefixed(opts.PackagePrefix)
		}
	}

	resolver := java.NewResolver(outer)
	for _, c := range parseImports(contents) {
		resolver.AddImport(c)
	}
	for _, c := range nested {
		resolver.AddNestedClass(c)
	}

	proxy, err := parseProxyNatives(resolver, contents)
	if err != nil {
		return nil, err
	}
	namespace, err := parseJNINamespace(contents)
	if err != nil {
		return nil, err
	}
	natives, err := extractNatives(resolver, contents)
	if err != nil {
		return nil, err
	}
	calledByNatives, err := extractCalledByNatives(resolver, contents)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedFile{
		Filename:        filename,
		Class:           outer,
		Resolver:        resolver,
		NonProxyNatives: natives,
		CalledByNatives: calledByNatives,
		JNINamespace:    namespace,
	}
	if proxy != nil {
		parsed.ModuleName = proxy.moduleName
		parsed.ProxyInterface = outer.MakeNested(proxy.interfaceName)
		parsed.ProxyVisibility = proxy.visibility
		parsed.ProxyMethods = proxy.methods
	}
	return parsed, nil
}

func parsePackage(contents string) (string, error) {
	m := packageRe.FindStringSubmatch(contents)
	if m == nil {
		return "", newParseError(`unable to find "package" line`)
	}
	return m[1], nil
}

// parseClasses returns the first declared class and every class declared
// after it. Classes nested more than one level deep are not told apart.
func parseClasses(contents string) (java.Class, []java.Class, error) {
	pkg, err := parsePackage(contents)
	if err != nil {
		return java.Class{}, nil, err
	}
	pkg = strings.ReplaceAll(pkg, ".", "/")

	var (
		outer  java.Class
		nested []java.Class
	)
	for _, m := range classRe.FindAllStringSubmatch(contents, -1) {
		preamble, name := m[1], m[2]
		// @Foo("mentions class Bar")
		if strings.Count(preamble, `"`)%2 != 0 {
			continue
		}
		if outer.IsZero() {
			outer = java.NewClass(pkg + "/" + name)
		} else {
			nested = append(nested, outer.MakeNested(name))
		}
	}
	if outer.IsZero() {
		return java.Class{}, nil, newParseError("no classes found")
	}
	return outer, nested, nil
}

// parseImports keeps imports as written with dots turned into slashes, so
// that imports of nested classes are recognizable during resolution.
func parseImports(contents string) []java.Class {
	var imports []java.Class
	for _, m := range importRe.FindAllStringSubmatch(contents, -1) {
		imports = append(imports, java.NewClass(strings.ReplaceAll(m[1], ".", "/")))
	}
	return imports
}

type proxyNatives struct {
	interfaceName string
	visibility    string
	moduleName    string
	methods       []ParsedMethod
}

func parseProxyNatives(resolver *java.Resolver, contents string) (*proxyNatives, error) {
	matches := proxyInterfaceRe.FindAllStringSubmatch(contents, -1)
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		return nil, newParseError("multiple @NativeMethods interfaces in one class are not supported")
	}

	m := matches[0]
	group := func(name string) string {
		return m[proxyInterfaceRe.SubexpIndex(name)]
	}
	ret := &proxyNatives{
		interfaceName: group("interface_name"),
		visibility:    group("visibility"),
		moduleName:    group("module_name"),
	}

	for _, mm := range interfaceMethodRe.FindAllStringSubmatch(group("interface_body"), -1) {
		preamble, name, paramsText := mm[1], mm[2], mm[3]
		preamble = publicRe.ReplaceAllString(preamble, "")
		annotations, returnText := parseAnnotations(preamble)
		params, err := ParseParamList(resolver, paramsText, true)
		if err != nil {
			return nil, err
		}
		returnType, err := ParseType(resolver, returnText)
		if err != nil {
			return nil, err
		}
		ret.methods = append(ret.methods, ParsedMethod{
			Name:            name,
			ReturnType:      returnType,
			Params:          params,
			NativeClassName: annotations["NativeClassQualifiedName"],
		})
	}
	if len(ret.methods) == 0 {
		return nil, newParseError("found no methods within @NativeMethods interface")
	}
	sortParsedMethods(ret.methods)
	return ret, nil
}

func sortParsedMethods(methods []ParsedMethod) {
	sort.SliceStable(methods, func(i, j int) bool {
		a, b := methods[i], methods[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if c := a.Signature().Compare(b.Signature()); c != 0 {
			return c < 0
		}
		return a.NativeClassName < b.NativeClassName
	})
}

func parseJNINamespace(contents string) (string, error) {
	m := jniNamespaceRe.FindAllStringSubmatch(contents, -1)
	switch len(m) {
	case 0:
		return "", nil
	case 1:
		return m[0][1], nil
	}
	return "", newParseError("found multiple @JNINamespace attributes")
}

// extractNatives finds methods declared with the native keyword. Their names
// must start with "native", which is dropped from the stored name.
func extractNatives(resolver *java.Resolver, contents string) ([]*NativeMethod, error) {
	var natives []*NativeMethod
	for _, m := range nativeRe.FindAllStringSubmatch(contents, -1) {
		group := func(name string) string {
			return m[nativeRe.SubexpIndex(name)]
		}
		returnType, err := ParseType(resolver, group("return_type"))
		if err != nil {
			return nil, err
		}
		params, err := ParseParamList(resolver, group("params"), true)
		if err != nil {
			return nil, err
		}
		native, err := NewNativeMethod(NativeMethodSpec{
			Name:            strings.TrimPrefix(group("name"), "native"),
			ReturnType:      returnType,
			Params:          params,
			Static:          strings.Contains(group("qualifiers"), "static"),
			NativeClassName: group("native_class_name"),
		})
		if err != nil {
			return nil, newParseError(err.Error(), strings.TrimSpace(m[0]))
		}
		natives = append(natives, native)
	}
	sort.SliceStable(natives, func(i, j int) bool {
		a, b := natives[i], natives[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Signature.Compare(b.Signature) < 0
	})
	return natives, nil
}

// extractCalledByNatives finds methods annotated with @CalledByNative,
// @CalledByNativeUnchecked or @CalledByNativeForTesting. A marker that is
// not followed by a recognizable declaration is an error.
func extractCalledByNatives(resolver *java.Resolver, contents string) ([]*CalledByNative, error) {
	var calledByNatives []*CalledByNative
	for _, m := range calledByNativeRe.FindAllStringSubmatch(contents, -1) {
		group := func(name string) string {
			return m[calledByNativeRe.SubexpIndex(name)]
		}
		returnText, name := group("return_type"), group("name")
		isConstructor := returnText == ""
		if isConstructor {
			returnText, name = name, ConstructorName
		}
		returnType, err := ParseType(resolver, returnText)
		if err != nil {
			return nil, err
		}
		params, err := ParseParamList(resolver, group("params"), true)
		if err != nil {
			return nil, err
		}
		c, err := NewCalledByNative(CalledByNativeSpec{
			Name:          name,
			ReturnType:    returnType,
			Params:        params,
			Static:        strings.Contains(group("prefix"), "static"),
			Unchecked:     strings.Contains(group("unchecked"), "Unchecked"),
			IsConstructor: isConstructor,
			JavaClassName: group("annotation"),
		})
		if err != nil {
			return nil, newParseError(err.Error(), m[0])
		}
		calledByNatives = append(calledByNatives, c)
	}

	lines := strings.Split(calledByNativeRe.ReplaceAllString(contents, ""), "\n")
	for i, line := range lines {
		if !strings.Contains(line, "@CalledByNative") {
			continue
		}
		context := []string{line}
		if i+1 < len(lines) {
			context = append(context, lines[i+1])
		}
		return nil, newParseError("could not parse @CalledByNative method signature", context...)
	}

	sortCalledByNatives(calledByNatives)
	return MangleCalledByNatives(calledByNatives), nil
}

func sortCalledByNatives(calledByNatives []*CalledByNative) {
	sort.SliceStable(calledByNatives, func(i, j int) bool {
		a, b := calledByNatives[i], calledByNatives[j]
		if a.JavaClassName != b.JavaClassName {
			return a.JavaClassName < b.JavaClassName
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Signature.Compare(b.Signature) < 0
	})
}
