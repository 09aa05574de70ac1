package main

import (
	"github.com/spf13/cobra"

	"github.com/eas-tools/alerts-utils/slack"
)

func notifyCommand(a *app) *cobra.Command {
	var (
		subject     string
		messageType string
	)

	cmd := &cobra.Command{
		Use:   "notify section...",
		Short: "Post a message to the Slack webhook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.config.Slack.Validate(); err != nil {
				return err
			}
			client := slack.NewClient(slack.WithLogger(a.logger))
			return client.Send(cmd.Context(), slack.Message{
				WebhookURL:       a.config.Slack.WebhookURL,
				Subject:          subject,
				Type:             slack.MessageType(messageType),
				MarkdownSections: args,
			})
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Message header")
	cmd.Flags().StringVar(&messageType, "type", string(slack.InfoMessage), "success, error, info or general")
	cmd.Flags().String("webhook", "", "Slack incoming webhook URL")
	cobra.CheckErr(cmd.MarkFlagRequired("subject"))
	cobra.CheckErr(a.v.BindPFlag("slack.webhook", cmd.Flags().Lookup("webhook")))
	return cmd
}
