package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book does not exist.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateISBN is returned when a book with the same ISBN already exists.
var ErrDuplicateISBN = errors.New("duplicate isbn")

// Book represents a catalog entry. AverageRating and ReviewsCount are
// aggregates computed at read time, never stored.
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          *string   `json:"isbn"`
	Description   *string   `json:"description"`
	CoverURL      *string   `json:"cover_url"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
	ReviewsCount  int       `json:"reviews_count"`
}

// Query defines search, sort and pagination for listing books.
type Query struct {
	Search string
	SortBy string
	Limit  int
	Offset int
}

// Update holds the partial-update input. Empty fields leave the stored
// value unchanged, so this cannot clear a field to empty.
type Update struct {
	Title       string
	Author      string
	ISBN        string
	Description string
	CoverURL    string
}
