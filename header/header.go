// Package header renders the C++ JNI header for one set of bindings.
package header

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jnizero/java"
	"github.com/dhamidi/jnizero/jni"
)

var log = commonlog.GetLogger("jnizero.header")

//go:embed templates
var templateFS embed.FS

var templates = template.Must(template.New("header").ParseFS(templateFS, "templates/*.tmpl"))

// DefaultScriptName is recorded in the header comment of generated files.
const DefaultScriptName = "jnizero"

// Options controls code generation. PackagePrefix, UseProxyHash and
// EnableJNIMultiplexing must match the values used when generating the
// Java side.
type Options struct {
	ExtraIncludes         []string
	EnableProfiling       bool
	UseProxyHash          bool
	EnableJNIMultiplexing bool
	// SplitName is passed to LazyGetClass when the classes live in an
	// Android feature split.
	SplitName     string
	PackagePrefix string
	ScriptName    string
}

// FileName returns the conventional header name for a class.
func FileName(class java.Class) string {
	return strings.ReplaceAll(class.Name(), "$", "_") + "_jni.h"
}

// Generate returns the complete header for b, wrapped at 100 columns.
func Generate(b *jni.Bindings, opts Options) (string, error) {
	g := &generator{
		b:    b,
		opts: opts,
		genJNI: jni.GenJNIClass(opts.UseProxyHash || opts.EnableJNIMultiplexing,
			b.ModuleName, opts.PackagePrefix),
	}
	if g.opts.ScriptName == "" {
		g.opts.ScriptName = DefaultScriptName
	}
	out, err := g.content()
	if err != nil {
		return "", fmt.Errorf("%s: %w", b.Class, err)
	}
	log.Debugf("generated header for %s: %d natives, %d called by natives",
		b.Class, len(b.Natives), len(b.CalledByNatives))
	return WrapOutput(out), nil
}

type generator struct {
	b      *jni.Bindings
	opts   Options
	genJNI java.Class
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

var indentedEmptyLineRe = regexp.MustCompile(`(?m)^(?:  )+$\n`)

// RemoveIndentedEmptyLines drops lines that hold nothing but indentation.
func RemoveIndentedEmptyLines(s string) string {
	return indentedEmptyLineRe.ReplaceAllString(s, "")
}

func (g *generator) content() (string, error) {
	classPaths, err := render("classPaths", struct {
		Classes      []classPath
		SplitNameArg string
	}{g.classPaths(), g.splitNameArg()})
	if err != nil {
		return "", err
	}

	stubs, err := g.methodStubs()
	if err != nil {
		return "", err
	}
	constants := g.constantFields()
	if open := g.openNamespace(); open != "" {
		closing := g.closeNamespace()
		stubs = strings.Join([]string{open, stubs, closing}, "\n")
		if constants != "" {
			constants = strings.Join([]string{open, constants, closing}, "\n")
		}
	}

	return render("file", struct {
		ScriptName           string
		Class                string
		HeaderGuard          string
		Includes             string
		ClassPathDefinitions string
		ConstantFields       string
		MethodStubs          string
	}{
		ScriptName:           g.opts.ScriptName,
		Class:                g.b.Class.FullNameWithSlashes(),
		HeaderGuard:          strings.ReplaceAll(g.b.Class.FullNameWithSlashes(), "/", "_") + "_JNI",
		Includes:             g.includes(),
		ClassPathDefinitions: classPaths,
		ConstantFields:       constants,
		MethodStubs:          stubs,
	})
}

func (g *generator) includes() string {
	if len(g.opts.ExtraIncludes) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, inc := range g.opts.ExtraIncludes {
		fmt.Fprintf(&sb, "#include \"%s\"\n", inc)
	}
	return sb.String()
}

func (g *generator) splitNameArg() string {
	if g.opts.SplitName == "" {
		return ""
	}
	return `"` + g.opts.SplitName + `", `
}

type classPath struct {
	JavaClass string
	Path      string
}

// classPaths lists the classes the stubs look up, keyed by simple name in
// first-seen order. The GEN_JNI class is declared elsewhere and skipped.
func (g *generator) classPaths() []classPath {
	var order []string
	paths := map[string]string{}
	set := func(name, path string) {
		if _, ok := paths[name]; !ok {
			order = append(order, name)
		}
		paths[name] = path
	}

	fqc := g.b.Class.FullNameWithSlashes()
	for _, c := range g.b.CalledByNatives {
		set(g.b.Class.Name(), fqc)
		if c.JavaClassName != "" {
			set(c.JavaClassName, fqc+"$"+c.JavaClassName)
		}
	}
	for _, n := range g.b.Natives {
		if n.IsProxy {
			set(g.genJNI.Name(), g.genJNI.FullNameWithSlashes())
			continue
		}
		set(g.b.Class.Name(), fqc)
	}

	var ret []classPath
	for _, name := range order {
		path := paths[name]
		if path == g.genJNI.FullNameWithSlashes() {
			continue
		}
		ret = append(ret, classPath{JavaClass: jni.EscapeClassName(path), Path: path})
	}
	return ret
}

func (g *generator) constantFields() string {
	if len(g.b.ConstantFields) == 0 {
		return ""
	}
	lines := []string{fmt.Sprintf("enum Java_%s_constant_fields {", g.b.Class.Name())}
	for _, c := range g.b.ConstantFields {
		lines = append(lines, fmt.Sprintf("  %s = %d,", c.Name, c.Value))
	}
	lines = append(lines, "};", "")
	return strings.Join(lines, "\n")
}

func (g *generator) openNamespace() string {
	if g.b.Namespace == "" {
		return ""
	}
	var lines []string
	for _, ns := range strings.Split(g.b.Namespace, "::") {
		lines = append(lines, "namespace "+ns+" {")
	}
	return strings.Join(lines, "\n") + "\n"
}

func (g *generator) closeNamespace() string {
	if g.b.Namespace == "" {
		return ""
	}
	parts := strings.Split(g.b.Namespace, "::")
	lines := make([]string, len(parts))
	for i, ns := range parts {
		lines[len(parts)-1-i] = "}  // namespace " + ns
	}
	return "\n" + strings.Join(lines, "\n")
}

func (g *generator) methodStubs() (string, error) {
	var stubs []string
	for _, n := range g.b.Natives {
		s, err := g.nativeStub(n)
		if err != nil {
			return "", err
		}
		stubs = append(stubs, s)
	}
	for _, c := range g.b.CalledByNatives {
		s, err := g.calledByNativeStub(c)
		if err != nil {
			return "", err
		}
		stubs = append(stubs, s)
	}
	return strings.Join(stubs, "\n"), nil
}
