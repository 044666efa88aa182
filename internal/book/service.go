package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book in ascending id order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create validates in and stores it as a new book.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	if err := Validate(in); err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, in)
}

// Update validates in and replaces the stored book with the given id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if err := Validate(in); err != nil {
		return Book{}, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a book and returns what was removed.
func (s *Service) Delete(ctx context.Context, id int64) (Book, error) {
	return s.repo.Delete(ctx, id)
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
