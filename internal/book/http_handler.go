package book

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"booksync/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Routes registers the books resource on mux. Both /books and /books/ serve
// the collection.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/{$}", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("POST /books/{$}", h.Create)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// List handles GET /books/
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Create handles POST /books/
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	b, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /books/{id}. The removed book is returned.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	b, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// decodeInput reads the request body. published_year must be present; a
// missing or null value is reported alongside any other field errors.
func (h *HTTPHandler) decodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var body inputBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			httpx.JSONErrorWithRequest(r, w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
		case errors.Is(err, ErrInvalid):
			httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), []httpx.ErrorDetail{
				{Field: "published_year", Message: "published_year must be an integer"},
			})
		default:
			httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object", nil)
		}
		return Input{}, false
	}

	in := Input{Title: body.Title, Author: body.Author}
	if body.PublishedYear == nil {
		missing := &ValidationError{}
		var verr *ValidationError
		if errors.As(Validate(in), &verr) {
			missing.Fields = append(missing.Fields, verr.Fields...)
		}
		missing.Fields = append(missing.Fields, FieldError{Field: "published_year", Message: "published_year is required"})
		h.writeError(w, r, missing)
		return Input{}, false
	}
	in.PublishedYear = *body.PublishedYear
	return in, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		notFound(w, r)
	case errors.As(err, &verr):
		details := make([]httpx.ErrorDetail, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, httpx.ErrorDetail{Field: f.Field, Message: f.Message})
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", details)
	default:
		h.internalError(w, r, err)
	}
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("books request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", httpx.RequestIDFrom(r),
		"err", err,
	)
	httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
