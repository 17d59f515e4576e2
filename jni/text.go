package jni

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dhamidi/jnizero/java"
)

// Line comments, block comments, char literals and string literals. Literals
// are matched so that comment markers inside them are left alone.
var commentRe = regexp.MustCompile(`(?sm)//.*?$|/\*.*?\*/|'(?:\\.|[^\\'])*'|"(?:\\.|[^\\"])*"`)

// RemoveComments strips Java comments while keeping string and character
// literals intact.
func RemoveComments(contents string) string {
	return commentRe.ReplaceAllStringFunc(contents, func(s string) string {
		if strings.HasPrefix(s, "/") {
			return ""
		}
		return s
	})
}

// Innermost angle-bracket group on a single line. Comparison operators get
// mangled too, which does not matter for declarations.
var genericsRe = regexp.MustCompile(`<[^<>\n]*>`)

// RemoveGenerics strips type argument lists, one nesting level per pass,
// until nothing changes.
func RemoveGenerics(value string) string {
	for {
		ret := genericsRe.ReplaceAllString(value, "")
		if len(ret) == len(value) {
			return ret
		}
		value = ret
	}
}

// Only @Foo and @Foo("value") are understood.
var annotationRe = regexp.MustCompile(`@([\w.]+)(?:\(\s*"(.*?)"\s*\))?\s*`)

// parseAnnotations collects the annotations in value and returns the text
// following the last one.
func parseAnnotations(value string) (map[string]string, string) {
	annotations := make(map[string]string)
	last := 0
	for _, m := range annotationRe.FindAllStringSubmatchIndex(value, -1) {
		name := value[m[2]:m[3]]
		annotations[name] = ""
		if m[4] >= 0 {
			annotations[name] = value[m[4]:m[5]]
		}
		last = m[1]
	}
	return annotations, value[last:]
}

func ParseType(resolver *java.Resolver, value string) (java.Type, error) {
	annotations, value := parseAnnotations(strings.TrimSpace(value))
	value = strings.TrimSpace(value)
	dims := 0
	for strings.HasSuffix(value, "[]") {
		dims++
		value = strings.TrimSpace(strings.TrimSuffix(value, "[]"))
	}
	if value == "" {
		return java.Type{}, newParseError("missing type name")
	}

	var t java.Type
	if java.IsPrimitive(value) {
		t = java.PrimitiveType(value, dims)
	} else {
		c, err := resolver.Resolve(value)
		if err != nil {
			return java.Type{}, &ParseError{Message: err.Error(), Err: err}
		}
		t = java.ClassType(c, dims)
	}
	if len(annotations) > 0 {
		t = t.WithAnnotations(annotations)
	}
	return t, nil
}

var finalRe = regexp.MustCompile(`\bfinal\s`)

// parseParamList parses a comma-separated parameter list. Without names
// (javap output) parameters are called p0, p1, ...
func ParseParamList(resolver *java.Resolver, value string, hasNames bool) (java.ParamList, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	value = finalRe.ReplaceAllString(value, "")

	var params java.ParamList
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		var name string
		if hasNames {
			i := strings.LastIndexAny(part, " \t\r\n")
			if i < 0 {
				return nil, newParseError("could not parse parameter " + strconv.Quote(part))
			}
			part, name = strings.TrimSpace(part[:i]), part[i+1:]
		} else {
			name = "p" + strconv.Itoa(len(params))
		}

		if strings.HasSuffix(part, "...") {
			part = strings.TrimSuffix(part, "...") + "[]"
		}

		t, err := ParseType(resolver, part)
		if err != nil {
			return nil, err
		}
		params = append(params, java.Param{Type: t, Name: name})
	}
	return params, nil
}
