package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/listenupapp/librarian-server/internal/domain"
)

var (
	username string
	password string
	register bool
	admin    bool
)

// loginCmd logs in and prints the access token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print an access token",
	Long: `Log in with a staff account and print the access token.

The password is read from the terminal when --password is not given.
With --register the account is created first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if username == "" {
			return fmt.Errorf("--username is required")
		}
		if password == "" {
			pw, err := readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = pw
		}

		c := newClient()
		ctx := cmd.Context()

		if register {
			role := domain.AccountRoleUser
			if admin {
				role = domain.AccountRoleAdmin
			}
			account, err := c.Register(ctx, username, password, role)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Registered %s (%s)\n", account.Username, account.Role)
		}

		tok, err := c.Login(ctx, username, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	loginCmd.Flags().BoolVar(&register, "register", false, "Create the account before logging in")
	loginCmd.Flags().BoolVar(&admin, "admin", false, "Register with the ADMIN role")
}

// readPassword reads a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(raw)), nil
}
