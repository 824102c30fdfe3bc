/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the bundle pack groups as a table",
		Long: `Resolves the manifest exactly like split and renders one row per group.
Useful for checking what each parallel job will receive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := ParseCommandConfig(cmd)
			if err != nil {
				return err
			}

			log := newCommandLogger(cmd, config.Verbose)
			defer func() { _ = log.Sync() }()

			plan := NewPackResolver(*config, log).ResolveOrFallback(cmd.ErrOrStderr())

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, renderPlan(plan)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Source: %s (%d packs in %d groups)\n", plan.Source, len(plan.Names), len(plan.Groups))
			return err
		},
	}

	AddGroupingFlags(inspectCmd)

	return inspectCmd
}

// renderPlan draws one row per group
func renderPlan(plan *Plan) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Group", "Packs", "Names"})

	for i, group := range plan.Groups {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), strconv.Itoa(len(group)), strings.Join(group, ", ")})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 100},
	})

	return tw.Render()
}
