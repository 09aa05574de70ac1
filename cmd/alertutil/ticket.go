package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eas-tools/alerts-utils/zendesk"
)

func ticketCommand(a *app) *cobra.Command {
	var ticket zendesk.EASSupportTicket

	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Raise an emergency alerts support ticket in Zendesk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := zendesk.NewClient(a.config.Zendesk, zendesk.WithLogger(a.logger))
			if err != nil {
				return err
			}
			id, err := client.CreateTicket(cmd.Context(), ticket)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
	cmd.Flags().StringVarP(&ticket.Subject, "subject", "s", "", "Ticket subject")
	cmd.Flags().StringVarP(&ticket.Message, "message", "m", "", "Ticket body")
	cmd.Flags().StringVar(&ticket.Type, "type", zendesk.TypeIncident, "problem, incident, question or task")
	cmd.Flags().BoolVar(&ticket.P1, "p1", false, "Raise as P1, pages the on-call engineer")
	cmd.Flags().BoolVar(&ticket.TechnicalTicket, "technical", false, "Mark as a technical ticket")
	cmd.Flags().StringVar(&ticket.UserName, "name", "", "Requester name")
	cmd.Flags().StringVar(&ticket.UserEmail, "email", "", "Requester email")
	cmd.Flags().StringSliceVar(&ticket.EmailCCs, "cc", nil, "Email addresses to copy")
	cmd.Flags().String("api-key", "", "Zendesk API key")
	cobra.CheckErr(cmd.MarkFlagRequired("subject"))
	cobra.CheckErr(cmd.MarkFlagRequired("message"))
	cobra.CheckErr(a.v.BindPFlag("zendesk.api-key", cmd.Flags().Lookup("api-key")))
	return cmd
}
