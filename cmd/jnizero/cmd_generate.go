package main

import (
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var o generateOptions

	cmd := &cobra.Command{
		Use:     "generate-library [flags] [input-file...]",
		Aliases: []string{"generate"},
		Short:   "Write one JNI header per input class",
		Long: "Write one JNI header per input class.\n\n" +
			"Inputs are Java sources, or class entries of --jar-file that are\n" +
			"disassembled with javap. Without a javap binary, or with\n" +
			"--javap=builtin, class entries are read directly. Headers in\n" +
			"--output-dir that no input produces are removed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.inputFiles = append(o.inputFiles, args...)
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), &o)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&o.inputFiles, "input-file", nil, "Java source, or class entry of --jar-file (repeatable)")
	flags.StringVar(&o.sourcesDir, "sources-dir", "", "also use every .java file under this directory")
	flags.StringArrayVar(&o.excludes, "exclude", nil, "gitignore-style pattern excluded from --sources-dir (repeatable)")
	flags.StringVar(&o.outputDir, "output-dir", "", "directory the headers are written to")
	flags.StringArrayVar(&o.outputNames, "output-name", nil, "header file name, one per input (repeatable)")
	flags.StringVar(&o.jarFile, "jar-file", "", "read class entries from this jar")
	flags.StringVar(&o.javap, "javap", "", "javap executable, or \"builtin\" (default $JAVAP, then javap from PATH)")
	flags.StringVar(&o.jni.Namespace, "namespace", "", "C++ namespace when the source has no @JNINamespace")
	flags.StringVar(&o.jni.PackagePrefix, "package-prefix", "", "dotted package prepended to every class")
	flags.StringVar(&o.header.SplitName, "split-name", "", "Android split that holds the classes")
	flags.StringArrayVar(&o.header.ExtraIncludes, "extra-include", nil, "header to #include in the output (repeatable)")
	flags.BoolVar(&o.header.EnableProfiling, "enable-profiling", false, "emit frame pointer bookkeeping for profilers")
	flags.BoolVar(&o.jni.UncheckedExceptions, "unchecked-exceptions", false, "do not check for exceptions after calls into javap-derived classes")
	flags.BoolVar(&o.header.UseProxyHash, "use-proxy-hash", false, "bind proxy natives by hashed name on the short GEN_JNI class")
	flags.BoolVar(&o.header.EnableJNIMultiplexing, "enable-jni-multiplexing", false, "use the short GEN_JNI class for multiplexed natives")
	flags.BoolVar(&o.jni.IncludeTestOnly, "include-test-only", false, "keep natives named *ForTest or *ForTesting")
	flags.BoolVar(&o.check, "check", false, "print a diff against the headers on disk instead of writing them")
	flags.IntVarP(&o.workers, "jobs", "j", 0, "number of files parsed in parallel (default GOMAXPROCS)")
	cmd.MarkFlagRequired("output-dir")

	return cmd
}
