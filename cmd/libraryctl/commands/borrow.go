package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/listenupapp/librarian-server/internal/domain"
)

var (
	// Borrow flags
	dueDate    string
	loanSearch string
	loanStatus string
)

var borrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "Lend and return books",
}

var borrowCreateCmd = &cobra.Command{
	Use:   "create <userId> <bookId>",
	Short: "Lend a copy to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := parseDue(dueDate)
		if err != nil {
			return err
		}
		record, err := newClient().Borrow(cmd.Context(), args[0], args[1], due)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), record)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loan %s due %s\n", record.ID, record.DueDate.Local().Format(time.DateOnly))
		return nil
	},
}

var borrowReturnCmd = &cobra.Command{
	Use:   "return <loanId>",
	Short: "Return a loan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := newClient().Return(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), record)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loan %s returned\n", record.ID)
		return nil
	},
}

var borrowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loans",
	RunE: func(cmd *cobra.Command, args []string) error {
		loans, err := newClient().ListLoans(cmd.Context(), loanSearch, loanStatus)
		if err != nil {
			return err
		}
		return printLoans(cmd.OutOrStdout(), loans)
	},
}

func init() {
	rootCmd.AddCommand(borrowCmd)
	borrowCmd.AddCommand(borrowCreateCmd, borrowReturnCmd, borrowListCmd)

	borrowCreateCmd.Flags().StringVar(&dueDate, "due", "", "Due date (YYYY-MM-DD or RFC 3339)")
	borrowListCmd.Flags().StringVarP(&loanSearch, "search", "s", "", "Match book title, user name or membership ID")
	borrowListCmd.Flags().StringVar(&loanStatus, "status", "", "borrowed, returned or all")
}

// parseDue reads a --due value. A bare date means the end of that day in UTC.
func parseDue(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --due %q: use YYYY-MM-DD or RFC 3339", raw)
	}
	end := d.Add(24*time.Hour - time.Nanosecond)
	return &end, nil
}

func printLoans(w io.Writer, loans []domain.LoanView) error {
	return printTable(w, loans, "ID\tBOOK\tMEMBER\tDUE\tSTATUS", func(tw io.Writer) {
		for _, l := range loans {
			fmt.Fprintf(tw, "%s\t%s\t%s (%s)\t%s\t%s\n",
				l.ID, l.BookTitle, l.UserName, l.MembershipID, l.DueDate.Local().Format(time.DateOnly), l.DisplayStatus)
		}
	})
}
