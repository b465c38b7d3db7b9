package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"bookreviews/internal/book"
	"bookreviews/internal/review"
	"bookreviews/internal/store"
)

// Seeds the database with a few well-known books and reviews so the API
// has something to serve during local development.
func main() {
	ctx := context.Background()

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "books.db"
	}

	db, err := store.Open(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	bookRepo := book.NewSQLiteRepo(db, 5*time.Second)
	reviewRepo := review.NewSQLiteRepo(db, 5*time.Second)

	str := func(s string) *string { return &s }

	books := []book.Book{
		{
			Title:       "1984",
			Author:      "George Orwell",
			ISBN:        str("978-0451524935"),
			Description: str("Dystopian novel about totalitarian surveillance"),
			CoverURL:    str("https://covers.openlibrary.org/b/isbn/978-0451524935-M.jpg"),
		},
		{
			Title:       "Dom Casmurro",
			Author:      "Machado de Assis",
			ISBN:        str("978-8535911664"),
			Description: str("Classic of Brazilian literature"),
			CoverURL:    str("https://covers.openlibrary.org/b/isbn/978-8535911664-M.jpg"),
		},
		{
			Title:       "The Lord of the Rings",
			Author:      "J.R.R. Tolkien",
			ISBN:        str("978-0544003415"),
			Description: str("Epic fantasy set in Middle-earth"),
			CoverURL:    str("https://covers.openlibrary.org/b/isbn/978-0544003415-M.jpg"),
		},
	}

	for i := range books {
		err := bookRepo.Create(ctx, &books[i])
		if errors.Is(err, book.ErrDuplicateISBN) {
			log.Printf("Skipping %q: already seeded", books[i].Title)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to insert book %q: %v", books[i].Title, err)
		}

		for _, rev := range []review.Review{
			{BookID: books[i].ID, UserName: "João Silva", Rating: 5, Comment: "Excellent book, highly recommended!"},
			{BookID: books[i].ID, UserName: "Maria Santos", Rating: 4, Comment: "Very good, a bit slow in the middle."},
		} {
			if err := reviewRepo.Create(ctx, &rev); err != nil {
				log.Fatalf("Failed to insert review for %q: %v", books[i].Title, err)
			}
		}
		log.Printf("Seeded %q with 2 reviews", books[i].Title)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Total books in database: %d", total)
}
