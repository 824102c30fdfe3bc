/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bundlepacks/constants"
	"bundlepacks/grouping"
)

func newPickCmd() *cobra.Command {
	pickCmd := &cobra.Command{
		Use:   "pick [bundle-packs value]",
		Short: "Print the pack names of one group",
		Long: `Prints the names in the group at --index (zero-based), one per line.
The value is read from the argument or, when omitted, from stdin. A leading
"bundle-packs=" (or any key=) is ignored, so split's output can be piped in directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _ := cmd.Flags().GetInt("index")

			var value string
			if len(args) == 1 {
				value = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				value = string(data)
			}

			names, err := PickGroup(value, index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	pickCmd.Flags().Int("index", 0, "Zero-based index of the group to print")
	_ = pickCmd.MarkFlagRequired("index")

	return pickCmd
}

// PickGroup parses a bundle-packs value and returns the names of one group
func PickGroup(value string, index int) ([]string, error) {
	value = strings.TrimSpace(value)
	if key, rest, found := strings.Cut(value, "="); found && !strings.ContainsAny(key, constants.NameSeparator+constants.GroupSeparator) {
		value = rest
	}

	groups := grouping.Parse(value)
	if index < 0 || index >= len(groups) {
		return nil, fmt.Errorf("group index %d out of range: %d groups available", index, len(groups))
	}
	return groups[index], nil
}
