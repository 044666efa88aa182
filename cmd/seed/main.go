package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"booksync/internal/book"
	"booksync/internal/platform/booksapi"
)

type creator interface {
	Create(ctx context.Context, d book.Draft) (book.Book, error)
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var (
		count  = flag.Int("count", 50, "Number of books to create")
		apiURL = flag.String("api-url", os.Getenv("BOOKS_API_URL"), "Books server base URL")
		rps    = flag.Float64("rps", 20, "Maximum requests per second")
		seed   = flag.Int64("seed", 1, "Random seed for generated titles")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := booksapi.NewClient(*apiURL, booksapi.WithRateLimit(*rps, 1))

	logger.Info("seeding books", "count", *count, "url", client.BaseURL())
	created, err := seedBooks(context.Background(), client, *count, rand.New(rand.NewSource(*seed)), logger)
	if err != nil {
		logger.Error("seed failed", "created", created, "err", err)
		os.Exit(1)
	}
	logger.Info("seed done", "created", created)
}

// seedBooks creates count generated books and stops at the first failure.
func seedBooks(ctx context.Context, c creator, count int, rng *rand.Rand, logger *slog.Logger) (int, error) {
	for i := 0; i < count; i++ {
		d := randomDraft(i, rng)
		b, err := c.Create(ctx, d)
		if err != nil {
			return i, fmt.Errorf("create %q: %w", d.Title, err)
		}
		logger.Debug("created book", "id", b.ID, "title", b.Title)

		if (i+1)%10 == 0 {
			logger.Info("progress", "created", i+1, "total", count)
		}
	}
	return count, nil
}

func randomDraft(i int, rng *rand.Rand) book.Draft {
	return book.Draft{
		Title:         fmt.Sprintf("Book Title %d - %s", i+1, randomWord(rng)),
		Author:        fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
		PublishedYear: strconv.Itoa(1950 + rng.Intn(75)),
	}
}

var (
	firstNames = []string{"Ada", "Jorge", "Ursula", "Italo", "Octavia", "Haruki", "Toni", "Stanislaw"}
	lastNames  = []string{"Lovelace", "Borges", "Le Guin", "Calvino", "Butler", "Murakami", "Morrison", "Lem"}
)

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
