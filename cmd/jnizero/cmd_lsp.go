package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jnizero/jni"
	"github.com/dhamidi/jnizero/lsp"
)

func newLSPCmd() *cobra.Command {
	var opts jni.Options

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a Language Server that reports JNI extraction errors and outlines bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, opts)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&opts.PackagePrefix, "package-prefix", "", "dotted package prepended to every class")
	cmd.Flags().BoolVar(&opts.IncludeTestOnly, "include-test-only", false, "keep natives named *ForTest or *ForTesting")

	return cmd
}
