package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listenupapp/librarian-server/internal/client"
)

var sampleBooks = []client.BookRequest{
	{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", ISBN: "9780441478125", Category: "Science Fiction", PublishedYear: 1969, TotalCopies: 2},
	{Title: "Middlemarch", Author: "George Eliot", ISBN: "9780141439549", Category: "Classics", PublishedYear: 1871, TotalCopies: 1},
	{Title: "The Structure of Scientific Revolutions", Author: "Thomas S. Kuhn", ISBN: "9780226458120", Category: "Non-Fiction", PublishedYear: 1962, TotalCopies: 1},
}

var sampleUsers = []client.UserRequest{
	{Name: "Octavia Butler", Email: "octavia@example.com"},
	{Name: "Italo Calvino", Email: "italo@example.com"},
}

// seedCmd loads sample data through the API
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample books and members",
	Long: `Create a few sample books and members through the API.

Use the server's --seed-demo-data flag instead to seed at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		ctx := cmd.Context()

		for _, b := range sampleBooks {
			book, err := c.CreateBook(ctx, b)
			if err != nil {
				return fmt.Errorf("create book %q: %w", b.Title, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "book   %s  %s\n", book.ID, book.Title)
		}
		for _, u := range sampleUsers {
			user, err := c.CreateUser(ctx, u)
			if err != nil {
				return fmt.Errorf("create user %q: %w", u.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "member %s  %s\n", user.MembershipID, user.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
