package javap

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dhamidi/jnizero/jni"
)

// Run disassembles classFile with javapPath and returns its output. javap is
// run from the class file's directory with the bare class name.
func Run(ctx context.Context, javapPath, classFile string) (string, error) {
	javapPath, err := filepath.Abs(javapPath)
	if err != nil {
		return "", err
	}
	className := strings.TrimSuffix(filepath.Base(classFile), filepath.Ext(classFile))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, javapPath, "-c", "-verbose", "-s", className)
	cmd.Dir = filepath.Dir(classFile)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("running %s in %s", strings.Join(cmd.Args, " "), cmd.Dir)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("javap %s: %w: %s", classFile, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ParseClassFile runs javap on classFile and parses its output.
func ParseClassFile(ctx context.Context, javapPath, classFile string, opts jni.Options) (*jni.Bindings, error) {
	out, err := Run(ctx, javapPath, classFile)
	if err != nil {
		return nil, err
	}
	b, err := Parse(out, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", classFile, err)
	}
	b.Filename = classFile
	return b, nil
}

// ParseJar extracts classFiles, given as paths inside jarFile, to a
// temporary directory and parses each of them. Results are in the order of
// classFiles. An empty javapPath reads the entries with ReadClass instead.
func ParseJar(ctx context.Context, javapPath, jarFile string, classFiles []string, opts jni.Options) ([]*jni.Bindings, error) {
	if javapPath == "" {
		return readJar(jarFile, classFiles, opts)
	}

	tempDir, err := os.MkdirTemp("", "jnizero-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tempDir)

	if err := extract(jarFile, classFiles, tempDir); err != nil {
		return nil, err
	}

	var ret []*jni.Bindings
	for _, classFile := range classFiles {
		b, err := ParseClassFile(ctx, javapPath, filepath.Join(tempDir, filepath.FromSlash(classFile)), opts)
		if err != nil {
			return nil, err
		}
		b.Filename = classFile
		ret = append(ret, b)
	}
	return ret, nil
}

func readJar(jarFile string, classFiles []string, opts jni.Options) ([]*jni.Bindings, error) {
	r, err := zip.OpenReader(jarFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", jarFile, err)
	}
	defer r.Close()

	entries := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		entries[f.Name] = f
	}

	var ret []*jni.Bindings
	for _, classFile := range classFiles {
		f, ok := entries[classFile]
		if !ok {
			return nil, fmt.Errorf("%s: no entry named %s", jarFile, classFile)
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", jarFile, err)
		}
		b, err := ReadClass(data, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", classFile, err)
		}
		b.Filename = classFile
		ret = append(ret, b)
	}
	return ret, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func extract(jarFile string, names []string, dir string) error {
	r, err := zip.OpenReader(jarFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", jarFile, err)
	}
	defer r.Close()

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	for _, f := range r.File {
		if !wanted[f.Name] {
			continue
		}
		delete(wanted, f.Name)
		if err := extractFile(f, dir); err != nil {
			return fmt.Errorf("%s: %w", jarFile, err)
		}
	}
	for name := range wanted {
		return fmt.Errorf("%s: no entry named %s", jarFile, name)
	}
	return nil
}

func extractFile(f *zip.File, dir string) error {
	dest := filepath.Join(dir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(dest, filepath.Clean(dir)+string(os.PathSeparator)) {
		return fmt.Errorf("entry %s escapes the extraction directory", f.Name)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
