package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := newClient().Stats(cmd.Context())
		if err != nil {
			return err
		}
		return printTable(cmd.OutOrStdout(), stats, "METRIC\tVALUE", func(tw io.Writer) {
			fmt.Fprintf(tw, "Total books\t%d\n", stats.TotalBooks)
			fmt.Fprintf(tw, "Available\t%d\n", stats.AvailableBooks)
			fmt.Fprintf(tw, "Borrowed\t%d\n", stats.BorrowedBooks)
			fmt.Fprintf(tw, "Members\t%d\n", stats.TotalMembers)
			fmt.Fprintf(tw, "Overdue\t%d\n", stats.OverdueBooks)
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
