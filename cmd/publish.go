/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"bundlepacks/constants"
)

func newPublishCmd() *cobra.Command {
	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish each bundle pack group to a Pub/Sub topic",
		Long: `Resolves the groups like split (including the fallback) and publishes one message
per group to the topic. Message data is the comma separated group; attributes carry
the batch id, group index, group count and whether the groups came from the manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := ParseCommandConfig(cmd)
			if err != nil {
				return err
			}
			if config.Topic == "" {
				return fmt.Errorf("a topic is required (--topic or %s_TOPIC)", constants.EnvPrefix)
			}

			log := newCommandLogger(cmd, config.Verbose)
			defer func() { _ = log.Sync() }()

			out := cmd.OutOrStdout()
			plan := NewPackResolver(*config, log).ResolveOrFallback(cmd.ErrOrStderr())
			batchID := uuid.NewString()

			if config.DryRun {
				for i, message := range GroupMessages(plan, batchID) {
					fmt.Fprintf(out, "Would publish group %d/%d to %s: %s\n", i+1, len(plan.Groups), config.Topic, message.Data)
				}
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), config.Timeout)
			defer cancel()

			publisher, err := NewPubSubPublisher(ctx, config.Topic)
			if err != nil {
				return err
			}
			defer publisher.Close()

			published, err := PublishBatch(ctx, publisher, plan, BatchInfo{
				ID:      batchID,
				Topic:   config.Topic,
				Timeout: config.Timeout,
			}, log)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Published %d groups to %s (batch %s, source %s)\n",
				published, config.Topic, batchID, plan.Source)
			return nil
		},
	}

	AddGroupingFlags(publishCmd)
	publishCmd.Flags().String(keyTopic, "", "Full topic resource name (e.g. projects/<proj>/topics/<topic>)")
	publishCmd.Flags().Int(keyTimeout, constants.DefaultPublishTimeoutSeconds, "Timeout in seconds for publishing all groups")
	publishCmd.Flags().Bool(keyDryRun, false, "Print the messages instead of publishing them")

	return publishCmd
}
