package cli

import (
	"github.com/spf13/cobra"
)

func newInboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Inbox operations",
	}
	cmd.AddCommand(newInboxListCmd())
	return cmd
}

func newInboxListCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest messages in the inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, cfg, cleanup, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if count <= 0 {
				count = cfg.Defaults.InboxCount
			}

			summaries, err := session.FetchInbox(count)
			if err != nil {
				return err
			}

			printSummaries(cmd.OutOrStdout(), summaries)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "How many messages to list (defaults to config)")

	return cmd
}
