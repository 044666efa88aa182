// Package shelf keeps a local, best-effort mirror of the remote books
// collection together with the draft of the next book to add.
//
// The mirror is replaced wholesale by FetchAll and then patched locally by
// Create and Delete; it is never re-fetched behind the caller's back. A
// failed request leaves both the collection and the draft as they were.
package shelf

import (
	"context"
	"log/slog"
	"sync"

	"booksync/internal/book"
)

// Remote is the part of the books API the shelf needs.
type Remote interface {
	List(ctx context.Context) ([]book.Book, error)
	Create(ctx context.Context, d book.Draft) (book.Book, error)
	Delete(ctx context.Context, id int64) error
}

// Shelf is safe for concurrent use. Overlapping requests are neither ordered
// nor de-duplicated; each response is applied to the collection as it is at
// that moment.
type Shelf struct {
	remote Remote
	logger *slog.Logger

	mu    sync.RWMutex
	books []book.Book
	draft book.Draft

	mountOnce sync.Once
}

func New(remote Remote, logger *slog.Logger) *Shelf {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shelf{
		remote: remote,
		logger: logger,
		books:  []book.Book{},
	}
}

// Mount performs the initial fetch. Only the first call does anything.
func (s *Shelf) Mount(ctx context.Context) {
	s.mountOnce.Do(func() {
		_ = s.FetchAll(ctx)
	})
}

// FetchAll replaces the local collection with the server's.
func (s *Shelf) FetchAll(ctx context.Context) error {
	books, err := s.remote.List(ctx)
	if err != nil {
		s.logger.Error("fetch books failed", "err", err)
		return err
	}

	s.mu.Lock()
	s.books = append(make([]book.Book, 0, len(books)), books...)
	s.mu.Unlock()

	s.logger.Debug("books fetched", "count", len(books))
	return nil
}

// Create submits the current draft. On success the returned book is appended
// and the draft is cleared; on failure nothing changes.
func (s *Shelf) Create(ctx context.Context) (book.Book, error) {
	return s.Submit(ctx, s.Draft())
}

// Submit posts d in place of the current draft, with the same effect as
// Create on success and on failure.
func (s *Shelf) Submit(ctx context.Context, d book.Draft) (book.Book, error) {
	created, err := s.remote.Create(ctx, d)
	if err != nil {
		s.logger.Error("create book failed", "err", err, "title", d.Title)
		return book.Book{}, err
	}

	s.mu.Lock()
	s.books = append(s.books, created)
	s.draft = book.Draft{}
	s.mu.Unlock()

	s.logger.Debug("book created", "id", created.ID)
	return created, nil
}

// Delete removes the book with the given id on the server and, once that
// succeeds, from the local collection.
func (s *Shelf) Delete(ctx context.Context, id int64) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		s.logger.Error("delete book failed", "err", err, "id", id)
		return err
	}

	s.mu.Lock()
	kept := make([]book.Book, 0, len(s.books))
	for _, b := range s.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.books = kept
	s.mu.Unlock()

	s.logger.Debug("book deleted", "id", id)
	return nil
}

// Books returns a copy of the local collection.
func (s *Shelf) Books() []book.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]book.Book(nil), s.books...)
}

// Len returns the number of books held locally.
func (s *Shelf) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.books)
}

// Draft returns the pending input.
func (s *Shelf) Draft() book.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.draft
}

func (s *Shelf) SetDraft(d book.Draft) {
	s.mu.Lock()
	s.draft = d
	s.mu.Unlock()
}

func (s *Shelf) SetTitle(v string) {
	s.mu.Lock()
	s.draft.Title = v
	s.mu.Unlock()
}

func (s *Shelf) SetAuthor(v string) {
	s.mu.Lock()
	s.draft.Author = v
	s.mu.Unlock()
}

func (s *Shelf) SetPublishedYear(v string) {
	s.mu.Lock()
	s.draft.PublishedYear = v
	s.mu.Unlock()
}
