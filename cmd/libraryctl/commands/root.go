// Package commands implements the libraryctl command tree.
package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/listenupapp/librarian-server/internal/client"
)

var (
	// Global flags
	serverURL  string
	token      string
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "libraryctl",
	Short: "Command line client for the Librarian server",
	Long: `libraryctl drives a running Librarian server through its REST API.

Log in once and export the printed token:
  export LIBRARIAN_TOKEN=$(libraryctl login -u librarian)

Examples:
  libraryctl books list --category Fiction
  libraryctl borrow create <userId> <bookId> --due 2026-12-01
  libraryctl stats --json`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("LIBRARIAN_URL", "http://localhost:8080"), "Server base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("LIBRARIAN_TOKEN"), "Access token")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *client.Client {
	return client.New(serverURL, client.WithToken(token))
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printTable writes rows under header, or v as JSON with --json.
func printTable(w io.Writer, v any, header string, rows func(io.Writer)) error {
	if jsonOutput {
		return printJSON(w, v)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}
