package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eas-tools/alerts-utils/alert"
	"github.com/eas-tools/alerts-utils/broadcast"
	"github.com/eas-tools/alerts-utils/xmlsig"
)

func xmlCommand(a *app) *cobra.Command {
	var (
		input   string
		sentNow bool
	)

	cmd := &cobra.Command{
		Use:   "xml",
		Short: "Render the CAP or IBAG body of a broadcast event",
		Long: "Reads a broadcast event as JSON from a file or stdin and prints the XML body " +
			"that is sent to the cell broadcast centre.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generator, err := a.generator()
			if err != nil {
				return err
			}

			r := cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("cannot open event: %w", err)
				}
				defer f.Close()
				r = f
			}
			event, err := alert.ReadEvent(r)
			if err != nil {
				return err
			}

			if sentNow && event.Sent == "" {
				event.Sent = generator.Now()
			}

			body, err := generator.GenerateXMLBody(event)
			if err != nil {
				a.logger.Warn().Err(err).Str("identifier", event.Identifier).Msg("Cannot generate XML body")
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), body+"\n")
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Event JSON file, - for stdin")
	cmd.Flags().BoolVar(&sentNow, "sent-now", false, "Date an event without sent time at the current time")
	cmd.Flags().Bool("sign", false, "Sign the message")
	cmd.Flags().String("key", "", "PEM encoded RSA private key")
	cmd.Flags().String("cert", "", "PEM encoded certificate")
	cobra.CheckErr(a.v.BindPFlag("signing.enabled", cmd.Flags().Lookup("sign")))
	cobra.CheckErr(a.v.BindPFlag("signing.key", cmd.Flags().Lookup("key")))
	cobra.CheckErr(a.v.BindPFlag("signing.cert", cmd.Flags().Lookup("cert")))
	return cmd
}

func (a *app) generator() (*broadcast.Generator, error) {
	opts := []broadcast.Option{broadcast.WithLogger(a.logger)}
	if a.config.Signing.Enabled {
		signer, err := a.signer()
		if err != nil {
			return nil, err
		}
		opts = append(opts, broadcast.WithSigner(signer))
	}
	return broadcast.New(opts...), nil
}

func (a *app) signer() (*xmlsig.Signer, error) {
	if a.config.Signing.Key == "" || a.config.Signing.Cert == "" {
		return nil, fmt.Errorf("signing is enabled but signing.key or signing.cert is not set")
	}
	keyPEM, err := os.ReadFile(a.config.Signing.Key)
	if err != nil {
		return nil, fmt.Errorf("cannot read signing key: %w", err)
	}
	certPEM, err := os.ReadFile(a.config.Signing.Cert)
	if err != nil {
		return nil, fmt.Errorf("cannot read signing certificate: %w", err)
	}
	return xmlsig.NewSigner(keyPEM, certPEM)
}
