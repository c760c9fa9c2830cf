package cli

import (
	"github.com/spf13/cobra"

	"mailtui/internal/smtp"
	"mailtui/internal/ui"
)

func runTUI(cmd *cobra.Command) error {
	session, cfg, cleanup, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	send := func(to, subject, body string) error {
		return smtp.Submit(cfg, to, subject, body)
	}

	return ui.Run(session, send, cfg.Defaults.InboxCount)
}
