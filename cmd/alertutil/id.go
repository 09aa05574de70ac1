package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eas-tools/alerts-utils/uuid64"
)

func idCommand() *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "id [uuid]",
		Short: "Print a compact identifier, or convert one from or to a UUID",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				_, err := fmt.Fprintln(out, uuid64.New())
				return err
			case decode:
				id, err := uuid64.ToUUID(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, id)
				return err
			default:
				compact, err := uuid64.FromString(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, compact)
				return err
			}
		},
	}
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Convert a compact identifier to a UUID")
	return cmd
}
