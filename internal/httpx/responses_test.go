package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, []map[string]string{{"key": "value"}})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected Content-Type application/json")
	}

	var body []map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body) != 1 || body[0]["key"] != "value" {
		t.Errorf("Expected bare array body, got %v", body)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	details := []ErrorDetail{
		{Field: "title", Message: "title is required"},
	}

	JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Success {
		t.Error("Expected success to be false")
	}
	if response.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected error code VALIDATION_ERROR, got %s", response.Error.Code)
	}
	if len(response.Error.Details) != 1 {
		t.Errorf("Expected 1 error detail, got %d", len(response.Error.Details))
	}
}

func TestJSONErrorWithRequest_IncludesRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/books/9", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-123"))
	w := httptest.NewRecorder()

	JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)

	var response struct {
		Meta map[string]string `json:"meta"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Meta["request_id"] != "req-123" {
		t.Errorf("Expected request_id in meta, got %v", response.Meta)
	}
}
