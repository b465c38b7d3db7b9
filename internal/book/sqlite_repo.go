package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const bookColumns = `b.id, b.title, b.author, b.isbn, b.description, b.cover_url, b.created_at,
       COALESCE(stats.avg_rating, 0), COALESCE(stats.review_count, 0)`

const statsJoin = `LEFT JOIN (
		SELECT book_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count
		FROM reviews
		GROUP BY book_id
	) stats ON stats.book_id = b.id`

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

func (r *SQLiteRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	where := "1=1"
	args := []any{}
	if q.Search != "" {
		where = "(LOWER(b.title) LIKE ? OR LOWER(b.author) LIKE ?)"
		pattern := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pattern, pattern)
	}

	countSQL := "SELECT COUNT(*) FROM books b WHERE " + where
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRowContext(timeoutCtx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "b.created_at DESC, b.id DESC"
	switch q.SortBy {
	case "title":
		order = "b.title ASC"
	case "author":
		order = "b.author ASC"
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM books b
		%s
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`,
		bookColumns, statsJoin, where, order)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.QueryContext(timeoutCtx2, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *SQLiteRepo) Get(ctx context.Context, id int64) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books b %s WHERE b.id = ?`, bookColumns, statsJoin)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRowContext(timeoutCtx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *SQLiteRepo) Create(ctx context.Context, b *Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if b.ISBN != nil {
		var one int
		err := r.db.QueryRowContext(timeoutCtx,
			`SELECT 1 FROM books WHERE isbn = ? LIMIT 1`, *b.ISBN).Scan(&one)
		if err == nil {
			return ErrDuplicateISBN
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}

	b.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(timeoutCtx, `
		INSERT INTO books (title, author, isbn, description, cover_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.Title, b.Author, b.ISBN, b.Description, b.CoverURL, b.CreatedAt)
	if err != nil {
		// Two concurrent creates can race the pre-check; the unique index
		// on isbn is the authoritative guard.
		if isUniqueViolation(err) {
			return ErrDuplicateISBN
		}
		return err
	}
	b.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteRepo) Update(ctx context.Context, id int64, u Update) (Book, error) {
	sets := []string{}
	args := []any{}

	if u.Title != "" {
		sets = append(sets, "title = ?")
		args = append(args, u.Title)
	}
	if u.Author != "" {
		sets = append(sets, "author = ?")
		args = append(args, u.Author)
	}
	if u.ISBN != "" {
		sets = append(sets, "isbn = ?")
		args = append(args, u.ISBN)
	}
	if u.Description != "" {
		sets = append(sets, "description = ?")
		args = append(args, u.Description)
	}
	if u.CoverURL != "" {
		sets = append(sets, "cover_url = ?")
		args = append(args, u.CoverURL)
	}

	if len(sets) > 0 {
		updateSQL := "UPDATE books SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		args = append(args, id)
		timeoutCtx, cancel := r.withTimeout(ctx)
		defer cancel()
		res, err := r.db.ExecContext(timeoutCtx, updateSQL, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return Book{}, ErrDuplicateISBN
			}
			return Book{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Book{}, err
		}
		if n == 0 {
			return Book{}, ErrNotFound
		}
	}

	return r.Get(ctx, id)
}

func (r *SQLiteRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	// Reviews go with the book via ON DELETE CASCADE.
	res, err := r.db.ExecContext(timeoutCtx, `DELETE FROM books WHERE id = ?`, id)
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

// scanBook hydrates one row produced with bookColumns. The average is
// rounded to one decimal place here so every read path agrees.
func scanBook(scan func(dest ...any) error) (Book, error) {
	var b Book
	var avg float64
	if err := scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.CoverURL,
		&b.CreatedAt, &avg, &b.ReviewsCount); err != nil {
		return Book{}, err
	}
	b.AverageRating = math.Round(avg*10) / 10
	return b, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
