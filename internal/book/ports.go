package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, in Input) (Book, error)
	Update(ctx context.Context, id int64, in Input) (Book, error)
	// Delete removes the book and returns it as it was stored.
	Delete(ctx context.Context, id int64) (Book, error)
	Ping(ctx context.Context) error
}
