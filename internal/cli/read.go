package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <uid>",
		Short: "Read a message by UID",
		Args:  cobra.ExactArgs(1),
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

			detail, err := session.ReadMessage(uint32(uid))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "From: %s\n", detail.From)
			if detail.Subject != "" {
				fmt.Fprintf(out, "Subject: %s\n", detail.Subject)
			}
			if detail.Date != "" {
				fmt.Fprintf(out, "Date: %s\n", detail.Date)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, detail.Body)
			return nil
		},
	}

	return cmd
}
