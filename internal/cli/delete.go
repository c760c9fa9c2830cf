package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <uid>",
		Short: "Permanently delete a message by UID",
		Long: "Flags the message deleted and expunges the mailbox. Expunge also\n" +
			"removes any other message already flagged deleted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid uid: %s", args[0])
			}

			session, _, cleanup, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := session.DeleteMessage(uint32(uid)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}

	return cmd
}
