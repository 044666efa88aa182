package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  title <text>     set the draft title
  author <text>    set the draft author
  year <text>      set the draft published year
  add              create a book from the draft
  delete <id>      delete a book
  fetch            reload the list from the server
  list             print the list
  help             show this help
  quit             leave the shell
`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive view of the collection",
		Long: `shell loads the collection once on start and then reads commands from
stdin. The draft form and the list are printed after every change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (a *app) runShell(ctx context.Context, in io.Reader, out io.Writer) error {
	a.shelf.Mount(ctx)
	if err := a.view(out); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		quit, err := a.dispatch(ctx, strings.TrimSpace(scanner.Text()), out)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// dispatch runs one shell line. Request failures are already logged by the
// shelf and do not end the session.
func (a *app) dispatch(ctx context.Context, line string, out io.Writer) (bool, error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help", "?":
		_, err := fmt.Fprint(out, shellHelp)
		return false, err
	case "title":
		a.shelf.SetTitle(rest)
		return false, renderDraft(out, a.shelf.Draft())
	case "author":
		a.shelf.SetAuthor(rest)
		return false, renderDraft(out, a.shelf.Draft())
	case "year":
		a.shelf.SetPublishedYear(rest)
		return false, renderDraft(out, a.shelf.Draft())
	case "add":
		_, _ = a.shelf.Create(ctx)
		return false, a.view(out)
	case "delete", "rm":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			_, err = fmt.Fprintf(out, "invalid book id %q\n", rest)
			return false, err
		}
		_ = a.shelf.Delete(ctx, id)
		return false, a.view(out)
	case "fetch":
		_ = a.shelf.FetchAll(ctx)
		return false, a.view(out)
	case "list", "ls":
		return false, renderBooks(out, a.output, a.shelf.Books())
	default:
		_, err := fmt.Fprintf(out, "unknown command %q, type help\n", verb)
		return false, err
	}
}

func (a *app) view(out io.Writer) error {
	fmt.Fprintln(out, "Books")
	if err := renderDraft(out, a.shelf.Draft()); err != nil {
		return err
	}
	return renderBooks(out, a.output, a.shelf.Books())
}
