package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eas-tools/alerts-utils/gsm"
	"github.com/eas-tools/alerts-utils/template"
)

func countCommand(a *app) *cobra.Command {
	var (
		templateType string
		input        string
		prefix       string
		split        bool
		values       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "count [content]",
		Short: "Count the characters and fragments of message content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, args, input)
			if err != nil {
				return err
			}

			renderer, err := template.NewRenderer()
			if err != nil {
				return err
			}
			definition := template.Definition{
				Type:    template.Type(templateType),
				Content: content,
				Raw: map[string]any{
					"template_type": templateType,
					"content":       content,
				},
			}
			personalisation := make(map[string]any, len(values))
			for key, value := range values {
				personalisation[key] = value
			}
			opts := []template.Option{template.WithValues(personalisation), template.WithPrefix(prefix)}

			out := cmd.OutOrStdout()
			switch template.Type(templateType) {
			case template.SMS:
				message, err := renderer.NewSMSMessage(definition, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "content_count: %d\n", message.ContentCount())
				fmt.Fprintf(out, "content_count_without_prefix: %d\n", message.ContentCountWithoutPrefix())
				fmt.Fprintf(out, "fragment_count: %d\n", message.FragmentCount())
				fmt.Fprintf(out, "too_long: %t\n", message.IsMessageTooLong())
				fmt.Fprintf(out, "empty: %t\n", message.IsMessageEmpty())
				fmt.Fprintf(out, "non_compatible_characters: %q\n", string(gsm.NonCompatibleCharacters(content)))
				if err := printEncoding(out, message.ContentWithPlaceholdersFilledIn(), split); err != nil {
					return err
				}
			case template.Broadcast:
				message, err := renderer.NewBroadcastMessage(definition, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "encoded_content_count: %d\n", message.EncodedContentCount())
				fmt.Fprintf(out, "max_content_count: %d\n", message.MaxContentCount())
				fmt.Fprintf(out, "too_long: %t\n", message.ContentTooLong())
				fmt.Fprintf(out, "non_gsm_characters: %q\n", sortedRunes(message.NonGSMCharacters()))
			default:
				return fmt.Errorf("unknown template type %q", templateType)
			}
			a.logger.Debug().Str("template_type", templateType).Int("length", len(content)).Msg("Counted content")
			return nil
		},
	}
	cmd.Flags().StringVarP(&templateType, "type", "t", string(template.Broadcast), "Template type, sms or broadcast")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Read the content from a file, - for stdin")
	cmd.Flags().StringVar(&prefix, "prefix", "", "SMS prefix, usually the service name")
	cmd.Flags().StringToStringVar(&values, "value", nil, "Personalisation, name=value")
	cmd.Flags().BoolVar(&split, "split", false, "Print the fragments of an SMS")
	return cmd
}

func printEncoding(out io.Writer, content string, split bool) error {
	coding, encoded, err := gsm.Encode(content)
	if err != nil {
		return err
	}
	if coding == gsm.GSM7 {
		encoded = gsm.Pack(encoded)
	}
	fmt.Fprintf(out, "coding: %s\n", coding)
	fmt.Fprintf(out, "encoded_bytes: %d\n", len(encoded))
	if split {
		for i, fragment := range gsm.Split(content) {
			fmt.Fprintf(out, "fragment %d: %q\n", i+1, fragment)
		}
	}
	return nil
}

func readContent(cmd *cobra.Command, args []string, input string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case input == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	case input != "":
		b, err := os.ReadFile(input)
		return string(b), err
	default:
		return "", fmt.Errorf("no content given")
	}
}

func sortedRunes(set map[rune]struct{}) string {
	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}
