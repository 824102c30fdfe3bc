/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newGenerateDocsCmd() *cobra.Command {
	generateDocsCmd := &cobra.Command{
		Use:   "generateDocs",
		Short: "Generate and write CLI tool docs",
		Long:  `Generate and write CLI tool docs.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("dir")
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return err
			}
			rootCmd := cmd.Root()
			rootCmd.DisableAutoGenTag = true
			if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Documentation written to %s\n", outputDir)
			return nil
		},
	}

	generateDocsCmd.Flags().String("dir", "./docs/", "Output directory for the Markdown files")

	return generateDocsCmd
}
