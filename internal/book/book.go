package book

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrInvalid is returned when book input fails decoding or validation.
	ErrInvalid = errors.New("invalid book")
)

// Book is a persisted record. ID is assigned by the store.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear Year   `json:"published_year"`
}

// Input is the writable part of a Book, accepted by create and update.
type Input struct {
	Title         string `json:"title" validate:"required,max=255"`
	Author        string `json:"author" validate:"required,max=255"`
	PublishedYear Year   `json:"published_year" validate:"year"`
}

// inputBody is the wire form of Input. A nil PublishedYear means the key was
// absent or null.
type inputBody struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear *Year  `json:"published_year"`
}

// Draft is unsaved user input for a new Book. Every field holds the text the
// user typed; PublishedYear is sent to the server as-is.
type Draft struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear string `json:"published_year"`
}

// IsZero reports whether every draft field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Year is a publication year. It decodes from a JSON number or from a string
// holding an integer, so a form value can be posted without conversion. A
// number with a zero fraction such as 2000.0 is accepted; null is not.
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return fmt.Errorf("%w: published_year must not be null", ErrInvalid)
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(unquoted))
		if err != nil {
			return fmt.Errorf("%w: published_year %q is not an integer", ErrInvalid, unquoted)
		}
		*y = Year(n)
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		*y = Year(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%w: published_year %s is not an integer", ErrInvalid, s)
	}
	*y = Year(int(f))
	return nil
}

func (y Year) String() string {
	return strconv.Itoa(int(y))
}
