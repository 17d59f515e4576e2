package jni

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/jnizero/java"
)

// Bindings is the generation model for one class: everything a header
// emitter needs, with types resolved and identifiers assigned.
type Bindings struct {
	Filename        string
	Class           java.Class
	Resolver        *java.Resolver
	Namespace       string
	ModuleName      string
	ProxyInterface  java.Class
	ProxyVisibility string
	// Natives holds proxy natives first, then legacy natives.
	Natives         []*NativeMethod
	CalledByNatives []*CalledByNative
	ConstantFields  []ConstantField
}

// NewBindings turns a parsed source file into a generation model. The
// @JNINamespace annotation wins over opts.Namespace.
func NewBindings(parsed *ParsedFile, opts Options) (*Bindings, error) {
	b := &Bindings{
		Filename:        parsed.Filename,
		Class:           parsed.Class,
		Resolver:        parsed.Resolver,
		Namespace:       parsed.JNINamespace,
		ModuleName:      parsed.ModuleName,
		ProxyInterface:  parsed.ProxyInterface,
		ProxyVisibility: parsed.ProxyVisibility,
		CalledByNatives: parsed.CalledByNatives,
	}
	if b.Namespace == "" {
		b.Namespace = opts.Namespace
	}

	for _, m := range parsed.ProxyMethods {
		native, err := NewNativeMethod(NativeMethodSpec{
			Name:            m.Name,
			ReturnType:      m.ReturnType,
			Params:          m.Params,
			IsProxy:         true,
			Class:           parsed.Class,
			NativeClassName: m.NativeClassName,
		})
		if err != nil {
			return nil, &ParseError{Filename: parsed.Filename, Message: err.Error(), Err: err}
		}
		b.Natives = append(b.Natives, native)
	}
	b.Natives = append(b.Natives, parsed.NonProxyNatives...)

	if !opts.IncludeTestOnly {
		b.RemoveTestOnlyNatives()
	}
	MangleNatives(b.Natives)
	return b, nil
}

func (b *Bindings) ProxyNatives() []*NativeMethod {
	var ret []*NativeMethod
	for _, n := range b.Natives {
		if n.IsProxy {
			ret = append(ret, n)
		}
	}
	return ret
}

func (b *Bindings) NonProxyNatives() []*NativeMethod {
	var ret []*NativeMethod
	for _, n := range b.Natives {
		if !n.IsProxy {
			ret = append(ret, n)
		}
	}
	return ret
}

func (b *Bindings) RemoveTestOnlyNatives() {
	kept := b.Natives[:0]
	for _, n := range b.Natives {
		if !n.IsTestOnly {
			kept = append(kept, n)
		}
	}
	b.Natives = kept
}

// IsEmpty reports whether the class declares nothing to bind.
func (b *Bindings) IsEmpty() bool {
	return len(b.Natives) == 0 && len(b.CalledByNatives) == 0
}

// ParseAll parses and assembles filenames using up to workers goroutines.
// Results are in the order of filenames. The error of the earliest failing
// file in that order is returned.
func ParseAll(ctx context.Context, filenames []string, opts Options, workers int) ([]*Bindings, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(filenames) {
		workers = len(filenames)
	}

	results := make([]*Bindings, len(filenames))
	errs := make([]error, len(filenames))
	work := make(chan int, len(filenames))
	for i := range filenames {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					continue
				}
				parsed, err := ParseFile(filenames[idx], opts)
				if err != nil {
					errs[idx] = err
					continue
				}
				results[idx], errs[idx] = NewBindings(parsed, opts)
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// EmptyError lists input files without any natives or called-by-natives.
type EmptyError struct {
	Filenames []string
}

func (e *EmptyError) Error() string {
	var sb strings.Builder
	for i, f := range e.Filenames {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "no native methods found in %s", f)
	}
	return sb.String()
}

// CheckNotEmpty fails when any of bindings declares nothing to bind.
func CheckNotEmpty(bindings []*Bindings) error {
	var empty []string
	for _, b := range bindings {
		if b.IsEmpty() {
			empty = append(empty, b.Filename)
		}
	}
	if len(empty) > 0 {
		return &EmptyError{Filenames: empty}
	}
	return nil
}

// ModuleConflictError reports proxy natives spread over several
// @NativeMethods modules in one generation run.
type ModuleConflictError struct {
	FilesByModule map[string][]string
}

func (e *ModuleConflictError) Error() string {
	modules := make([]string, 0, len(e.FilesByModule))
	for m := range e.FilesByModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	var sb strings.Builder
	sb.WriteString("multiple values for @NativeMethods(moduleName) are not supported")
	for _, m := range modules {
		fmt.Fprintf(&sb, "\nmodule_name=%s", m)
		for _, f := range e.FilesByModule[m] {
			fmt.Fprintf(&sb, "\n  %s", f)
		}
	}
	return sb.String()
}

// CheckSameModule fails when the files with proxy natives do not all share
// one module name.
func CheckSameModule(bindings []*Bindings) error {
	filesByModule := make(map[string][]string)
	for _, b := range bindings {
		if len(b.ProxyNatives()) > 0 {
			filesByModule[b.ModuleName] = append(filesByModule[b.ModuleName], b.Filename)
		}
	}
	if len(filesByModule) > 1 {
		return &ModuleConflictError{FilesByModule: filesByModule}
	}
	return nil
}
