package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"booksync/internal/book"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// errRequestFailed is returned after the shelf has already logged the cause.
var errRequestFailed = errors.New("request failed, see log for details")

type bookView struct {
	ID            int64  `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Author        string `json:"author" yaml:"author"`
	PublishedYear int    `json:"published_year" yaml:"published_year"`
}

func toView(b book.Book) bookView {
	return bookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedYear: int(b.PublishedYear),
	}
}

func bookLine(b book.Book) string {
	return fmt.Sprintf("%d\t%s by %s (%d)", b.ID, b.Title, b.Author, b.PublishedYear)
}

func renderBooks(w io.Writer, format string, books []book.Book) error {
	views := make([]bookView, 0, len(books))
	for _, b := range books {
		views = append(views, toView(b))
	}

	switch format {
	case formatJSON:
		return encodeJSON(w, views)
	case formatYAML:
		return encodeYAML(w, views)
	}

	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books.")
		return err
	}
	for _, b := range books {
		if _, err := fmt.Fprintln(w, bookLine(b)); err != nil {
			return err
		}
	}
	return nil
}

func renderBook(w io.Writer, format string, b book.Book) error {
	switch format {
	case formatJSON:
		return encodeJSON(w, toView(b))
	case formatYAML:
		return encodeYAML(w, toView(b))
	}
	_, err := fmt.Fprintln(w, bookLine(b))
	return err
}

func renderDraft(w io.Writer, d book.Draft) error {
	_, err := fmt.Fprintf(w, "Title: %q  Author: %q  Published Year: %q\n", d.Title, d.Author, d.PublishedYear)
	return err
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
