package review

import (
	"context"
)

// Repository defines the contract for review storage.
type Repository interface {
	Create(ctx context.Context, rev *Review) error
	ListByBook(ctx context.Context, bookID int64) ([]Review, error)
	Delete(ctx context.Context, id int64) error
	// Exists reports whether the parent book exists, returning
	// ErrBookNotFound when it does not.
	Exists(ctx context.Context, bookID int64) error
}
