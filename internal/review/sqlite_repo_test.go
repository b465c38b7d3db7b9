package review

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bookreviews/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*SQLiteRepo, *sql.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	return NewSQLiteRepo(db, 5*time.Second), db
}

func insertBook(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO books (title, author, created_at) VALUES (?, ?, ?)`,
		title, "Anon", time.Now().UTC())
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestSQLiteRepo_Create(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	bookID := insertBook(t, db, "1984")

	rev := Review{BookID: bookID, UserName: "A", Rating: 5, Comment: "great"}
	require.NoError(t, repo.Create(ctx, &rev))
	assert.NotZero(t, rev.ID)
	assert.False(t, rev.CreatedAt.IsZero())

	t.Run("missing book", func(t *testing.T) {
		err := repo.Create(ctx, &Review{BookID: 999, UserName: "A", Rating: 5})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestSQLiteRepo_ListByBook(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	bookID := insertBook(t, db, "1984")
	otherID := insertBook(t, db, "Emma")

	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &Review{BookID: bookID, UserName: name, Rating: i + 2}))
	}
	require.NoError(t, repo.Create(ctx, &Review{BookID: otherID, UserName: "elsewhere", Rating: 1}))

	t.Run("creation order, scoped to the book", func(t *testing.T) {
		reviews, err := repo.ListByBook(ctx, bookID)
		require.NoError(t, err)
		require.Len(t, reviews, 3)
		assert.Equal(t, "first", reviews[0].UserName)
		assert.Equal(t, "second", reviews[1].UserName)
		assert.Equal(t, "third", reviews[2].UserName)
	})

	t.Run("book without reviews gives empty list", func(t *testing.T) {
		emptyID := insertBook(t, db, "Persuasion")
		reviews, err := repo.ListByBook(ctx, emptyID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
		assert.NotNil(t, reviews)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := repo.ListByBook(ctx, 999)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestSQLiteRepo_Exists(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	bookID := insertBook(t, db, "1984")

	assert.NoError(t, repo.Exists(ctx, bookID))
	assert.ErrorIs(t, repo.Exists(ctx, 999), ErrBookNotFound)
}

func TestSQLiteRepo_Delete(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	bookID := insertBook(t, db, "1984")

	rev := Review{BookID: bookID, UserName: "A", Rating: 5}
	require.NoError(t, repo.Create(ctx, &rev))

	require.NoError(t, repo.Delete(ctx, rev.ID))

	reviews, err := repo.ListByBook(ctx, bookID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	t.Run("already gone", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, rev.ID), ErrNotFound)
	})
}
