package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stagekit",
		Short: "View state registry and transition tooling",
		Long: `Stagekit tracks a hierarchy of stages, layers, and frames under
dotted paths, resolves path expressions to concrete targets, and
coordinates batched frame transitions into single observable state
changes.

Definitions are YAML documents describing a stage; commands load them
from a local path or an s3://bucket/key URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		exportCmd(),
		resolveCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
