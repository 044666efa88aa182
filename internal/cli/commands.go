package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"booksync/internal/book"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "fetch"},
		Short:   "Fetch and print every book",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.shelf.FetchAll(cmd.Context()); err != nil {
				return errRequestFailed
			}
			return renderBooks(cmd.OutOrStdout(), a.output, a.shelf.Books())
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var draft book.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a book",
		Example: `  books add --title "Dune" --author "Frank Herbert" --year 1965`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.shelf.SetDraft(draft)
			created, err := a.shelf.Create(cmd.Context())
			if err != nil {
				return errRequestFailed
			}
			return renderBook(cmd.OutOrStdout(), a.output, created)
		},
	}

	cmd.Flags().StringVarP(&draft.Title, "title", "t", "", "Book title")
	cmd.Flags().StringVarP(&draft.Author, "author", "a", "", "Book author")
	cmd.Flags().StringVarP(&draft.PublishedYear, "year", "y", "", "Year of publication")

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a book and print what is left",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}

			ctx := cmd.Context()
			a.shelf.Mount(ctx)
			if err := a.shelf.Delete(ctx, id); err != nil {
				return errRequestFailed
			}
			return renderBooks(cmd.OutOrStdout(), a.output, a.shelf.Books())
		},
	}
}
