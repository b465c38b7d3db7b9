package http

import (
	"log/slog"
	"net/http"

	"bookreviews/internal/book"
	"bookreviews/internal/httpx"
	"bookreviews/internal/review"

	"github.com/julienschmidt/httprouter"
)

// NewRouter wires every API route and wraps the router in the middleware
// chain (outermost to innermost): access log, panic recovery, CORS. CORS
// sits inside recovery so its headers are attached to every response the
// handlers produce, including errors.
func NewRouter(books book.Repository, reviews review.Repository, logger *slog.Logger) http.Handler {
	bookHandler := NewBookHandler(books, reviews, logger)
	reviewHandler := NewReviewHandler(reviews, logger)

	router := httprouter.New()

	// The default httprouter error handlers answer in plain text; the API
	// is JSON everywhere.
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.Error(w, http.StatusNotFound, "Resource not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.HandlerFunc(http.MethodGet, "/api/books", bookHandler.List)
	router.HandlerFunc(http.MethodPost, "/api/books", bookHandler.Create)
	router.HandlerFunc(http.MethodGet, "/api/books/:id", bookHandler.Show)
	router.HandlerFunc(http.MethodPut, "/api/books/:id", bookHandler.Update)
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", bookHandler.Delete)

	router.HandlerFunc(http.MethodPost, "/api/books/:id/reviews", reviewHandler.Create)
	router.HandlerFunc(http.MethodGet, "/api/books/:id/reviews", reviewHandler.ListByBook)
	router.HandlerFunc(http.MethodDelete, "/api/reviews/:id", reviewHandler.Delete)

	router.HandlerFunc(http.MethodGet, "/api/health", healthCheck)

	handler := httpx.CORSMiddleware(router)
	handler = httpx.RecoveryMiddleware(logger)(handler)
	handler = httpx.AccessLogMiddleware(logger)(handler)
	return handler
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
