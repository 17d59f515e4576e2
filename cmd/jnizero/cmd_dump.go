package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jnizero/format"
	"github.com/dhamidi/jnizero/javap"
	"github.com/dhamidi/jnizero/jni"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string
	var opts jni.Options

	cmd := &cobra.Command{
		Use:   "dump <file>...",
		Short: "Print the bindings extracted from .java sources, class files or javap output",
		Long: "Print the bindings extracted from .java sources, class files or javap output.\n\n" +
			"Files ending in .javap or .txt are read as the output of javap -c -verbose -s.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := format.NewEncoder(dumpFormat, cmd.OutOrStdout())
			if enc == nil {
				return fmt.Errorf("unknown format: %s (expected %s)", dumpFormat, strings.Join(format.Names, " or "))
			}

			for _, filename := range args {
				b, err := loadBindings(filename, opts)
				if err != nil {
					return err
				}
				if err := enc.Encode(b); err != nil {
					return fmt.Errorf("encode %s: %w", dumpFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, line)")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "C++ namespace when the source has no @JNINamespace")
	cmd.Flags().StringVar(&opts.PackagePrefix, "package-prefix", "", "dotted package prepended to every class")
	cmd.Flags().BoolVar(&opts.IncludeTestOnly, "include-test-only", false, "keep natives named *ForTest or *ForTesting")
	cmd.Flags().BoolVar(&opts.UncheckedExceptions, "unchecked-exceptions", false, "do not check for exceptions after calls into javap-derived classes")

	return cmd
}

func loadBindings(filename string, opts jni.Options) (*jni.Bindings, error) {
	switch filepath.Ext(filename) {
	case ".java":
		parsed, err := jni.ParseFile(filename, opts)
		if err != nil {
			return nil, err
		}
		return jni.NewBindings(parsed, opts)
	case ".class":
		return javap.ReadClassFile(filename, opts)
	case ".javap", ".txt":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("read javap output: %w", err)
		}
		b, err := javap.Parse(string(data), opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		b.Filename = filename
		return b, nil
	}
	return nil, fmt.Errorf("unsupported file extension: %s (expected .java, .class, .javap or .txt)", filepath.Ext(filename))
}
