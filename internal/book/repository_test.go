package book

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseRepository runs the same CRUD contract against any store. The
// store must start empty.
func exerciseRepository(t *testing.T, repo Repository) {
	ctx := context.Background()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	first, err := repo.Create(ctx, Input{Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := repo.Create(ctx, Input{Title: "Neuromancer", Author: "William Gibson", PublishedYear: 1984})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	books, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Book{first, second}, books)

	got, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	updated, err := repo.Update(ctx, first.ID, Input{Title: "Dune", Author: "F. Herbert", PublishedYear: 1965})
	require.NoError(t, err)
	assert.Equal(t, "F. Herbert", updated.Author)
	assert.Equal(t, first.ID, updated.ID)

	_, err = repo.Update(ctx, 9999, Input{Title: "X", Author: "Y", PublishedYear: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	_, err = repo.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	books, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Book{second}, books)

	// ids are not reused after a delete
	third, err := repo.Create(ctx, Input{Title: "Solaris", Author: "Stanislaw Lem", PublishedYear: 1961})
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)

	assert.NoError(t, repo.Ping(ctx))
}

func TestMemoryRepo(t *testing.T) {
	exerciseRepository(t, NewMemoryRepo())
}

func TestMemoryRepo_Seed(t *testing.T) {
	repo := NewMemoryRepo(Book{ID: 4, Title: "Seeded", Author: "A", PublishedYear: 2000})

	b, err := repo.Create(context.Background(), Input{Title: "Next", Author: "B", PublishedYear: 2001})
	require.NoError(t, err)
	assert.Equal(t, int64(5), b.ID)
}

func TestSQLiteRepo(t *testing.T) {
	repo, err := OpenSQLite(context.Background(), ":memory:", 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	exerciseRepository(t, repo)
}

func TestSQLiteRepo_File(t *testing.T) {
	path := t.TempDir() + "/books.db"
	ctx := context.Background()

	repo, err := OpenSQLite(ctx, path, 2*time.Second)
	require.NoError(t, err)
	created, err := repo.Create(ctx, Input{Title: "Kept", Author: "A", PublishedYear: 1990})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := OpenSQLite(ctx, path, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestPostgresRepo(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := pool.Ping(ctx); err != nil {
		t.Skipf("Skipping integration test: cannot ping test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS books (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		published_year INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE books RESTART IDENTITY`)
	require.NoError(t, err)

	exerciseRepository(t, NewPostgresRepo(pool, 2*time.Second))
}
