package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"mailtui/internal/imap"
)

func printSummaries(out io.Writer, summaries []imap.MessageSummary) {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tDATE\tFROM")
	for _, sum := range summaries {
		date := ""
		if !sum.Date.IsZero() {
			date = sum.Date.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", sum.UID, date, sum.From)
	}
	_ = tw.Flush()
}
