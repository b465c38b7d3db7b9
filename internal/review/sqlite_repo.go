package review

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Create(ctx context.Context, rev *Review) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.bookExists(timeoutCtx, rev.BookID); err != nil {
		return err
	}

	rev.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(timeoutCtx, `
		INSERT INTO reviews (book_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		rev.BookID, rev.UserName, rev.Rating, rev.Comment, rev.CreatedAt)
	if err != nil {
		return err
	}
	rev.ID, err = res.LastInsertId()
	return err
}

// ListByBook returns the book's reviews in creation order.
func (r *SQLiteRepo) ListByBook(ctx context.Context, bookID int64) ([]Review, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.bookExists(timeoutCtx, bookID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(timeoutCtx, `
		SELECT id, book_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE book_id = ?
		ORDER BY id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.BookID, &rev.UserName, &rev.Rating,
			&rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) Exists(ctx context.Context, bookID int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.bookExists(timeoutCtx, bookID)
}

func (r *SQLiteRepo) bookExists(ctx context.Context, bookID int64) error {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM books WHERE id = ? LIMIT 1`, bookID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookNotFound
	}
	return err
}
