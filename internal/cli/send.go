package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mailtui/internal/config"
	"mailtui/internal/email"
	"mailtui/internal/smtp"
)

func newSendCmd() *cobra.Command {
	var to string
	var cc string
	var subject string
	var body string
	var bodyFile string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.ValidateSMTP(cfg); err != nil {
				return err
			}

			content, err := loadBody(body, bodyFile)
			if err != nil {
				return err
			}

			msg, err := email.BuildMessage(email.ComposeInput{
				From:    cfg.Auth.Username,
				To:      splitList(to),
				Cc:      splitList(cc),
				Subject: subject,
				Body:    content,
			})
			if err != nil {
				return err
			}

			// The envelope recipient list comes from the message's own
			// To and Cc headers.
			recipients, err := email.ExtractRecipients(msg)
			if err != nil {
				return err
			}
			if len(recipients) == 0 {
				return fmt.Errorf("at least one recipient is required")
			}

			if err := smtp.Send(cfg, cfg.Auth.Username, recipients, msg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sent.")
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Comma-separated recipients")
	cmd.Flags().StringVar(&cc, "cc", "", "Comma-separated CC recipients")
	cmd.Flags().StringVar(&subject, "subject", "", "Message subject")
	cmd.Flags().StringVar(&body, "body", "", "Message body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Path to file containing message body")

	return cmd
}
