/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bundlepacks/constants"
)

func newSplitCmd() *cobra.Command {
	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Print the bundle pack groups as a key=value line",
		Long: `Splits the manifest's pack names into groups and prints bundle-packs=<groups>.
Names within a group are separated by commas and groups by pipes.
Any failure prints the default grouping instead; the exit code is always 0.`,
		Args: cobra.ArbitraryArgs,
		RunE: runSplit,
	}

	AddGroupingFlags(splitCmd)
	AddOutputFlags(splitCmd)

	return splitCmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return splitFallback(cmd, fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	config, err := ParseCommandConfig(cmd)
	if err != nil {
		return splitFallback(cmd, err)
	}

	log := newCommandLogger(cmd, config.Verbose)
	defer func() { _ = log.Sync() }()

	plan := NewPackResolver(*config, log).ResolveOrFallback(errOut)

	fmt.Fprintf(out, "%s=%s\n", config.OutputKey, plan.Value)
	if plan.Source == constants.SourceManifest {
		fmt.Fprintf(errOut, "Found %d bundle packs, split into %d groups\n", len(plan.Names), len(plan.Groups))
	}
	return nil
}

// splitFallback reports err and prints the fallback line from the
// environment or the built-in default. It always returns nil.
func splitFallback(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	config := FallbackConfig()
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", config.OutputKey, config.DefaultPacks)
	return nil
}

// splitFlagErrorFunc keeps flag mistakes on the root and split commands from
// failing the step. Other commands report the error as usual.
func splitFlagErrorFunc(cmd *cobra.Command, err error) error {
	if cmd != cmd.Root() && cmd.Name() != "split" {
		return err
	}
	return splitFallback(cmd, err)
}
