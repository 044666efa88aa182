package book

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps books in process memory. Ids start at 1 and are never
// reused.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo seeded with the provided books.
func NewMemoryRepo(seed ...Book) *MemoryRepo {
	repo := &MemoryRepo{
		books:  make(map[int64]Book, len(seed)),
		nextID: 1,
	}

	for _, b := range seed {
		repo.books[b.ID] = b
		if b.ID >= repo.nextID {
			repo.nextID = b.ID + 1
		}
	}

	return repo
}

func (r *MemoryRepo) List(_ context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		result = append(result, b)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *MemoryRepo) Get(_ context.Context, id int64) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Create(_ context.Context, in Input) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := fromInput(r.nextID, in)
	r.nextID++

	r.books[b.ID] = b
	return b, nil
}

func (r *MemoryRepo) Update(_ context.Context, id int64, in Input) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return Book{}, ErrNotFound
	}

	b := fromInput(id, in)
	r.books[id] = b
	return b, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}

	delete(r.books, id)
	return b, nil
}

func (r *MemoryRepo) Ping(_ context.Context) error {
	return nil
}

func fromInput(id int64, in Input) Book {
	return Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		PublishedYear: in.PublishedYear,
	}
}
