package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/listenupapp/librarian-server/internal/client"
	"github.com/listenupapp/librarian-server/internal/domain"
)

var (
	// User flags
	userSearch     string
	userRole       string
	userLoanStatus string
	userInput      client.UserRequest
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage members",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := newClient().ListUsers(cmd.Context(), userSearch, userRole)
		if err != nil {
			return err
		}
		return printUsers(cmd.OutOrStdout(), users)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().CreateUser(cmd.Context(), userInput)
		if err != nil {
			return err
		}
		return printUsers(cmd.OutOrStdout(), []domain.User{*user})
	},
}

var usersToggleCmd = &cobra.Command{
	Use:   "toggle-active <id>",
	Short: "Flip a user's active flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().ToggleActive(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printUsers(cmd.OutOrStdout(), []domain.User{*user})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().DeleteUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var usersLoansCmd = &cobra.Command{
	Use:   "loans <id>",
	Short: "List a user's loans",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loans, err := newClient().UserLoans(cmd.Context(), args[0], userLoanStatus)
		if err != nil {
			return err
		}
		return printLoans(cmd.OutOrStdout(), loans)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersToggleCmd, usersDeleteCmd, usersLoansCmd)

	usersListCmd.Flags().StringVarP(&userSearch, "search", "s", "", "Match name, email or membership ID")
	usersListCmd.Flags().StringVarP(&userRole, "role", "r", "", "member, librarian, admin or all")

	usersAddCmd.Flags().StringVar(&userInput.Name, "name", "", "Full name")
	usersAddCmd.Flags().StringVar(&userInput.Email, "email", "", "Email address")
	usersAddCmd.Flags().StringVar(&userInput.MembershipID, "membership-id", "", "Card number, generated when empty")
	usersAddCmd.Flags().StringVar((*string)(&userInput.Role), "role", "", "member, librarian or admin")

	usersLoansCmd.Flags().StringVar(&userLoanStatus, "status", "", "borrowed, returned or all")
}

func printUsers(w io.Writer, users []domain.User) error {
	return printTable(w, users, "ID\tMEMBERSHIP\tNAME\tEMAIL\tROLE\tACTIVE", func(tw io.Writer) {
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n", u.ID, u.MembershipID, u.Name, u.Email, u.Role, u.IsActive)
		}
	})
}
