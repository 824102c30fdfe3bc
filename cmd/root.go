/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"bundlepacks/logger"
)

// NewRootCmd builds the command tree. Running the root command without a
// subcommand behaves like split.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bundlepacks",
		Short: "Split bundle packs into groups for parallel pipeline jobs",
		Long: `Reads the bundle packing manifest, splits its pack names into groups and prints
them as a single key=value line that a CI pipeline can capture as an output variable.

When the manifest cannot be processed the configured default grouping is printed
instead, so the pipeline step never fails.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         runSplit,
	}
	rootCmd.SetFlagErrorFunc(splitFlagErrorFunc)

	rootCmd.PersistentFlags().String(keyConfig, "", "Config file (toml, yaml or json)")
	rootCmd.PersistentFlags().BoolP(keyVerbose, "v", false, "Enable debug logging on stderr")

	AddGroupingFlags(rootCmd)
	AddOutputFlags(rootCmd)

	rootCmd.AddCommand(newSplitCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())

	return rootCmd
}

// Execute runs the root command with os.Args
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newCommandLogger creates a logger writing to the command's stderr
func newCommandLogger(cmd *cobra.Command, verbose bool) logger.Logger {
	return logger.NewLoggerWithLevel(cmd.ErrOrStderr(), verbose)
}
