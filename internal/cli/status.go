package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show mailbox status",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, cleanup, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			name, messages, err := session.Status()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d messages\n", name, messages)
			return nil
		},
	}
}
