package book

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_ValidInput(t *testing.T) {
	if err := Validate(Input{Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965}); err != nil {
		t.Errorf("Expected no validation errors, got %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	err := Validate(Input{})
	if err == nil {
		t.Fatal("Expected validation errors for required fields")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected error to match ErrInvalid, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}

	hasTitle, hasAuthor := false, false
	for _, f := range verr.Fields {
		if f.Field == "title" && strings.Contains(f.Message, "required") {
			hasTitle = true
		}
		if f.Field == "author" && strings.Contains(f.Message, "required") {
			hasAuthor = true
		}
	}
	if !hasTitle {
		t.Error("Expected title required error")
	}
	if !hasAuthor {
		t.Error("Expected author required error")
	}
}

func TestValidate_YearRange(t *testing.T) {
	err := Validate(Input{Title: "T", Author: "A", PublishedYear: 12000})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "published_year" {
		t.Errorf("Expected one published_year error, got %+v", verr.Fields)
	}
}

func TestValidate_MaxLength(t *testing.T) {
	err := Validate(Input{Title: strings.Repeat("x", 256), Author: "A", PublishedYear: 1})
	if err == nil || !strings.Contains(err.Error(), "at most 255") {
		t.Errorf("Expected max length error, got %v", err)
	}
}
