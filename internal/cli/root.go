package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"booksync/internal/platform/booksapi"
	"booksync/internal/shelf"
)

// app is the state shared by every subcommand once flags are resolved.
type app struct {
	apiURL  string
	timeout time.Duration
	output  string
	verbose bool

	logger *slog.Logger
	shelf  *shelf.Shelf
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List, add and delete books on a books server",
		Long: `books keeps a local copy of a remote books collection.

list, delete and shell fetch the collection first; add only posts the new
book and prints what the server returned. Changes are applied on the server
and then to the local copy. Failed requests are logged to stderr and leave
the local copy untouched.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env files if present; the real environment wins.
			_ = godotenv.Load(".env")
			_ = godotenv.Load(".env.local")
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "Books server base URL (env BOOKS_API_URL, default "+booksapi.DefaultBaseURL+")")
	flags.DurationVar(&a.timeout, "timeout", booksapi.DefaultTimeout, "Per-request timeout")
	flags.StringVarP(&a.output, "output", "o", formatText, "Output format: text, json or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug details")

	cmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newDeleteCmd(a),
		newShellCmd(a),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	if err := checkFormat(a.output); err != nil {
		return err
	}

	if a.apiURL == "" {
		a.apiURL = os.Getenv("BOOKS_API_URL")
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = newLogger(cmd.ErrOrStderr(), level)

	client := booksapi.NewClient(a.apiURL, booksapi.WithTimeout(a.timeout))
	a.logger.Debug("using books server", "url", client.BaseURL())
	a.shelf = shelf.New(client, a.logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func checkFormat(f string) error {
	switch f {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", f)
}
