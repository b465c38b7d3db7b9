package review

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a review does not exist.
var ErrNotFound = errors.New("review not found")

// ErrBookNotFound is returned when the parent book does not exist.
var ErrBookNotFound = errors.New("book not found")

// Review is a single user-submitted rating with an optional comment,
// attached to exactly one book.
type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
