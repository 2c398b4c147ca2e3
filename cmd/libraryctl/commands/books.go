package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/listenupapp/librarian-server/internal/client"
	"github.com/listenupapp/librarian-server/internal/domain"
)

var (
	// Book flags
	bookSearch    string
	bookCategory  string
	bookAvailable bool
	bookInput     client.BookRequest
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage the catalog",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		var (
			books []domain.Book
			err   error
		)
		if bookAvailable {
			books, err = c.AvailableBooks(cmd.Context())
		} else {
			books, err = c.ListBooks(cmd.Context(), bookSearch, bookCategory)
		}
		if err != nil {
			return err
		}
		return printBooks(cmd.OutOrStdout(), books)
	},
}

var booksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := newClient().GetBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printBooks(cmd.OutOrStdout(), []domain.Book{*book})
	},
}

var booksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book",
	Long: `Add a book to the catalog.

Examples:
  libraryctl books add --title Dune --author "Frank Herbert" \
    --isbn 9780441013593 --category "Science Fiction" --copies 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := newClient().CreateBook(cmd.Context(), bookInput)
		if err != nil {
			return err
		}
		return printBooks(cmd.OutOrStdout(), []domain.Book{*book})
	},
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().DeleteBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var booksCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := newClient().Categories(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), categories)
		}
		for _, cat := range categories {
			fmt.Fprintln(cmd.OutOrStdout(), cat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.AddCommand(booksListCmd, booksGetCmd, booksAddCmd, booksDeleteCmd, booksCategoriesCmd)

	booksListCmd.Flags().StringVarP(&bookSearch, "search", "s", "", "Match title, author or ISBN")
	booksListCmd.Flags().StringVarP(&bookCategory, "category", "c", "", "Category, or all")
	booksListCmd.Flags().BoolVar(&bookAvailable, "available", false, "Only books with copies on the shelf")

	booksAddCmd.Flags().StringVar(&bookInput.Title, "title", "", "Title")
	booksAddCmd.Flags().StringVar(&bookInput.Author, "author", "", "Author")
	booksAddCmd.Flags().StringVar(&bookInput.ISBN, "isbn", "", "ISBN")
	booksAddCmd.Flags().StringVar(&bookInput.Category, "category", "", "Category")
	booksAddCmd.Flags().StringVar(&bookInput.Description, "description", "", "Description")
	booksAddCmd.Flags().IntVar(&bookInput.PublishedYear, "year", 0, "Year of publication")
	booksAddCmd.Flags().IntVar(&bookInput.TotalCopies, "copies", 1, "Copies owned")
	booksAddCmd.Flags().StringVar(&bookInput.CoverImage, "cover", "", "Cover image URL")
}

func printBooks(w io.Writer, books []domain.Book) error {
	return printTable(w, books, "ID\tTITLE\tAUTHOR\tCATEGORY\tAVAILABLE", func(tw io.Writer) {
		for _, b := range books {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\n", b.ID, b.Title, b.Author, b.Category, b.AvailableCopies, b.TotalCopies)
		}
	})
}
