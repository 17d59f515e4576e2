package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jnizero/discover"
	"github.com/dhamidi/jnizero/header"
	"github.com/dhamidi/jnizero/javap"
	"github.com/dhamidi/jnizero/jni"
)

var log = commonlog.GetLogger("jnizero")

type generateOptions struct {
	inputFiles  []string
	sourcesDir  string
	excludes    []string
	outputDir   string
	outputNames []string
	jarFile     string
	javap       string
	check       bool
	workers     int
	jni         jni.Options
	header      header.Options
}

// OutOfDateError is returned by --check when headers on disk differ from
// the generated ones.
type OutOfDateError struct {
	Changed []string
	Stale   []string
}

func (e *OutOfDateError) Error() string {
	return fmt.Sprintf("%d headers out of date, %d stale", len(e.Changed), len(e.Stale))
}

func runGenerate(ctx context.Context, out io.Writer, o *generateOptions) error {
	if o.jarFile != "" && o.jni.PackagePrefix != "" {
		return errors.New("--package-prefix is not supported with --jar-file")
	}
	o.header.PackagePrefix = o.jni.PackagePrefix

	inputs, names, err := o.inputs()
	if err != nil {
		return err
	}

	bindings, err := o.parse(ctx, inputs)
	if err != nil {
		return err
	}
	for i, b := range bindings {
		if names[i] == "" {
			names[i] = header.FileName(b.Class)
		}
	}

	if !o.check {
		if err := removeStaleHeaders(o.outputDir, names); err != nil {
			return err
		}
	}

	outdated := &OutOfDateError{}
	for i, b := range bindings {
		content, err := header.Generate(b, o.header)
		if err != nil {
			return err
		}
		path := filepath.Join(o.outputDir, names[i])

		if !o.check {
			if err := writeIfChanged(path, content); err != nil {
				return err
			}
			continue
		}

		current, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		diff, err := header.Diff(path, string(current), content)
		if err != nil {
			return err
		}
		if diff != "" {
			fmt.Fprint(out, diff)
			outdated.Changed = append(outdated.Changed, path)
		}
	}

	if o.check {
		stale, err := staleHeaders(o.outputDir, names)
		if err != nil {
			return err
		}
		for _, path := range stale {
			fmt.Fprintf(out, "stale header: %s\n", path)
		}
		outdated.Stale = stale
		if len(outdated.Changed) > 0 || len(outdated.Stale) > 0 {
			return outdated
		}
	}
	return nil
}

// inputs pairs every input with its requested header name, or "" for the
// default name. Kotlin sources are dropped.
func (o *generateOptions) inputs() ([]string, []string, error) {
	inputs := append([]string(nil), o.inputFiles...)
	if o.sourcesDir != "" {
		found, err := discover.JavaFiles(o.sourcesDir, o.excludes)
		if err != nil {
			return nil, nil, fmt.Errorf("--sources-dir: %w", err)
		}
		inputs = append(inputs, found...)
	}
	if len(inputs) == 0 {
		return nil, nil, errors.New("no input files")
	}
	if len(o.outputNames) > 0 && len(o.outputNames) != len(inputs) {
		return nil, nil, fmt.Errorf("got %d output names for %d inputs", len(o.outputNames), len(inputs))
	}

	var keptInputs, names []string
	for i, input := range inputs {
		if strings.HasSuffix(input, ".kt") {
			log.Infof("skipping Kotlin source %s", input)
			continue
		}
		name := ""
		if len(o.outputNames) > 0 {
			name = o.outputNames[i]
		}
		keptInputs = append(keptInputs, input)
		names = append(names, name)
	}
	return keptInputs, names, nil
}

func (o *generateOptions) parse(ctx context.Context, inputs []string) ([]*jni.Bindings, error) {
	if o.jarFile != "" {
		return javap.ParseJar(ctx, o.javapPath(), o.jarFile, inputs, o.jni)
	}

	bindings, err := jni.ParseAll(ctx, inputs, o.jni, o.workers)
	if err != nil {
		return nil, err
	}
	if err := jni.CheckNotEmpty(bindings); err != nil {
		return nil, err
	}
	if err := jni.CheckSameModule(bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

// builtinJavap selects the class file reader in place of a javap binary.
const builtinJavap = "builtin"

// javapPath returns the javap binary to run, or "" to read class files
// directly.
func (o *generateOptions) javapPath() string {
	path := o.javap
	if path == "" {
		path = os.Getenv("JAVAP")
	}
	if path == builtinJavap {
		return ""
	}
	if path != "" {
		return path
	}
	path, err := exec.LookPath("javap")
	if err != nil {
		log.Infof("javap not found on PATH, reading class files directly")
		return ""
	}
	return path
}

// staleHeaders lists .h files under dir whose base name is not one of
// keep.
func staleHeaders(dir string, keep []string) ([]string, error) {
	preserve := make(map[string]bool, len(keep))
	for _, name := range keep {
		preserve[filepath.Base(name)] = true
	}

	var stale []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.Type().IsRegular() && filepath.Ext(path) == ".h" && !preserve[d.Name()] {
			stale = append(stale, path)
		}
		return nil
	})
	return stale, err
}

// removeStaleHeaders deletes headers no input will produce, so that a moved
// Java class breaks C++ code still including its old header. Declared
// outputs are kept to preserve their timestamps.
func removeStaleHeaders(dir string, keep []string) error {
	stale, err := staleHeaders(dir, keep)
	if err != nil {
		return err
	}
	for _, path := range stale {
		log.Infof("removing stale header %s", path)
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

// writeIfChanged replaces path with content through a rename, leaving it
// untouched when it already holds content.
func writeIfChanged(path, content string) error {
	if current, err := os.ReadFile(path); err == nil && string(current) == content {
		log.Debugf("%s is up to date", path)
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".jnizero-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Infof("wrote %s", path)
	return nil
}
