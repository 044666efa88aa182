package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"booksync/internal/book"
	"booksync/internal/httpx"
)

// TestBooks is a small fixed collection, ids 1..3.
var TestBooks = []book.Book{
	{ID: 1, Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965},
	{ID: 2, Title: "Neuromancer", Author: "William Gibson", PublishedYear: 1984},
	{ID: 3, Title: "Solaris", Author: "Stanislaw Lem", PublishedYear: 1961},
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// BooksServer is a real books HTTP handler over an in-memory store.
type BooksServer struct {
	*httptest.Server
	Repo *book.MemoryRepo

	requests atomic.Int64
	failing  atomic.Int32
}

// NewBooksServer starts a books server seeded with seed. It is closed when
// the test ends.
func NewBooksServer(t testing.TB, seed ...book.Book) *BooksServer {
	t.Helper()

	repo := book.NewMemoryRepo(seed...)
	handler := book.NewHTTPHandler(book.NewService(repo), DiscardLogger())
	mux := http.NewServeMux()
	handler.Routes(mux)

	s := &BooksServer{Repo: repo}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		if code := s.failing.Load(); code != 0 {
			httpx.JSONError(w, int(code), "TEST_FAILURE", "forced failure", nil)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// FailWith makes every following request answer with status. Zero restores
// normal handling.
func (s *BooksServer) FailWith(status int) {
	s.failing.Store(int32(status))
}

// Requests reports how many requests reached the server.
func (s *BooksServer) Requests() int64 {
	return s.requests.Load()
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   []byte
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyBytes,
	}
}

// DecodeJSON decodes a recorded body into v.
func (r RecordResponse) DecodeJSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}
