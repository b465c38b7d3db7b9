package book

import (
	"context"
)

// Repository defines the contract for book storage.
type Repository interface {
	List(ctx context.Context, q Query) ([]Book, int, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, id int64, u Update) (Book, error)
	Delete(ctx context.Context, id int64) error
}
