package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores books in the table created by db/migrations.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, title, author, published_year FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT id, title, author, published_year FROM books WHERE id = $1`, id)
	return pgBook(row)
}

func (r *PostgresRepo) Create(ctx context.Context, in Input) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `
	INSERT INTO books (title, author, published_year)
	VALUES ($1, $2, $3)
	RETURNING id, title, author, published_year
	`, in.Title, in.Author, int(in.PublishedYear))
	return pgBook(row)
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, in Input) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `
	UPDATE books SET title = $2, author = $3, published_year = $4
	WHERE id = $1
	RETURNING id, title, author, published_year
	`, id, in.Title, in.Author, int(in.PublishedYear))
	return pgBook(row)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `DELETE FROM books WHERE id = $1 RETURNING id, title, author, published_year`, id)
	return pgBook(row)
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Ping(ctx)
}

func pgBook(row pgx.Row) (Book, error) {
	b, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}
