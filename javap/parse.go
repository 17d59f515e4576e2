// Package javap extracts called-by-native bindings and integer constants
// from the output of "javap -c -verbose -s", for classes that have no
// source to parse.
package javap

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jnizero/java"
	"github.com/dhamidi/jnizero/jni"
)

var log = commonlog.GetLogger("jnizero.javap")

var (
	classLineRe     = regexp.MustCompile(`^.*?(?:public).*?(?:class|interface) (\S+?)(?: |$)`)
	methodRe        = regexp.MustCompile(`^(?P<prefix>.*?)(?P<return_type>\S+?) (?P<name>\w+?)\((?P<params>.*?)\)`)
	constantFieldRe = regexp.MustCompile(`^.*?public static final int (?P<name>.*?);`)
	constantValueRe = regexp.MustCompile(`^.*?Constant(?:Value| value): int (?P<value>(-*[0-9]+)?)`)
)

const descriptorPrefix = "descriptor: "

// ErrNoClass is returned when the output has no public class declaration.
var ErrNoClass = errors.New("could not find java class in javap output")

// Parse builds bindings for every public method and constructor listed in
// text, plus its public static final int constants. Methods are listed
// before constructors, each in the order javap prints them.
func Parse(text string, opts jni.Options) (*jni.Bindings, error) {
	text = jni.RemoveGenerics(text)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	class, err := findClass(lines)
	if err != nil {
		return nil, err
	}
	resolver := java.NewResolver(class)

	b := &jni.Bindings{
		Class:     class,
		Resolver:  resolver,
		Namespace: opts.Namespace,
	}
	if b.Namespace == "" {
		b.Namespace = "JNI_" + class.Name()
	}

	for i := 2; i < len(lines); i++ {
		m := methodRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		c, err := calledByNative(resolver, lines, i, opts, jni.CalledByNativeSpec{
			Name:   m[methodRe.SubexpIndex("name")],
			Static: strings.Contains(m[methodRe.SubexpIndex("prefix")], "static"),
		}, m[methodRe.SubexpIndex("return_type")], m[methodRe.SubexpIndex("params")])
		if err != nil {
			return nil, err
		}
		b.CalledByNatives = append(b.CalledByNatives, c)
	}

	// javap keeps '$' in nested class names.
	dotted := strings.ReplaceAll(class.FullNameWithSlashes(), "/", ".")
	constructorRe := regexp.MustCompile(`^(.*?)public ` + regexp.QuoteMeta(dotted) + `\((?P<params>.*?)\)`)
	for i := 2; i < len(lines); i++ {
		m := constructorRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		c, err := calledByNative(resolver, lines, i, opts, jni.CalledByNativeSpec{
			Name:          jni.ConstructorName,
			IsConstructor: true,
		}, class.FullNameWithSlashes(), m[constructorRe.SubexpIndex("params")])
		if err != nil {
			return nil, err
		}
		b.CalledByNatives = append(b.CalledByNatives, c)
	}
	jni.MangleCalledByNatives(b.CalledByNatives)

	for i := 2; i < len(lines); i++ {
		m := constantFieldRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		value, ok, err := constantValue(lines, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Debugf("no value found for constant %s", m[1])
			continue
		}
		b.ConstantFields = append(b.ConstantFields, jni.ConstantField{Name: m[1], Value: value})
	}

	log.Debugf("javap %s: %d called by natives, %d constants",
		class, len(b.CalledByNatives), len(b.ConstantFields))
	return b, nil
}

func findClass(lines []string) (java.Class, error) {
	for _, line := range lines {
		m := classLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fqn, _, _ := strings.Cut(m[1], "<")
		return java.NewClass(strings.ReplaceAll(fqn, ".", "/")), nil
	}
	return java.Class{}, ErrNoClass
}

// calledByNative completes spec from the declaration at lines[i] and the
// descriptor line that follows it.
func calledByNative(resolver *java.Resolver, lines []string, i int, opts jni.Options, spec jni.CalledByNativeSpec, returnText, paramsText string) (*jni.CalledByNative, error) {
	descriptor, err := descriptorAt(lines, i+1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.TrimSpace(lines[i]), err)
	}

	returnType, err := jni.ParseType(resolver, returnText)
	if err != nil {
		return nil, err
	}
	params, err := jni.ParseParamList(resolver, paramsText, false)
	if err != nil {
		return nil, err
	}
	if sig, err := java.ParseMethodDescriptor(descriptor); err != nil {
		log.Warningf("%s: %s", strings.TrimSpace(lines[i]), err)
	} else if len(sig.Params) != len(params) {
		log.Warningf("%s: descriptor %s has %d parameters, declaration has %d",
			strings.TrimSpace(lines[i]), descriptor, len(sig.Params), len(params))
	}

	spec.ReturnType = returnType
	spec.Params = params
	spec.Descriptor = descriptor
	spec.SystemClass = true
	spec.Unchecked = opts.UncheckedExceptions
	return jni.NewCalledByNative(spec)
}

func descriptorAt(lines []string, i int) (string, error) {
	if i >= len(lines) {
		return "", errors.New("missing descriptor line")
	}
	_, descriptor, ok := strings.Cut(lines[i], descriptorPrefix)
	if !ok {
		return "", fmt.Errorf("missing descriptor line, got %q", strings.TrimSpace(lines[i]))
	}
	return strings.TrimSpace(descriptor), nil
}

// constantValue looks for the value of the constant declared at lines[i].
// javap prints it two or three lines below depending on the flags shown.
func constantValue(lines []string, i int) (int64, bool, error) {
	for _, offset := range []int{2, 3} {
		if i+offset >= len(lines) {
			break
		}
		m := constantValueRe.FindStringSubmatch(lines[i+offset])
		if m == nil || m[1] == "" {
			continue
		}
		value, err := strconv.ParseInt(strings.TrimLeft(m[1], "-"), 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("constant value %q: %w", m[1], err)
		}
		if strings.Count(m[1], "-")%2 == 1 {
			value = -value
		}
		return value, true, nil
	}
	return 0, false, nil
}
