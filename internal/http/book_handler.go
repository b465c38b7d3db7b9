package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"bookreviews/internal/book"
	"bookreviews/internal/httpx"
	"bookreviews/internal/review"
)

type BookHandler struct {
	books   book.Repository
	reviews review.Repository
	logger  *slog.Logger
}

func NewBookHandler(books book.Repository, reviews review.Repository, logger *slog.Logger) *BookHandler {
	return &BookHandler{books: books, reviews: reviews, logger: logger}
}

type createBookRequest struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	ISBN        *string `json:"isbn"`
	Description *string `json:"description"`
	CoverURL    *string `json:"cover_url"`
}

type updateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
}

// bookDetail is the GET /api/books/{id} payload: the book plus its full
// review list.
type bookDetail struct {
	book.Book
	Reviews []review.Review `json:"reviews"`
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = 10
	} else if perPage > 100 {
		perPage = 100
	}

	q := book.Query{
		Search: r.URL.Query().Get("search"),
		SortBy: r.URL.Query().Get("sort_by"),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}

	books, total, err := h.books.List(ctx, q)
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"books":        books,
		"total":        total,
		"pages":        (total + perPage - 1) / perPage,
		"current_page": page,
	})
}

func (h *BookHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Book not found")
		return
	}

	b, err := h.books.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "Book not found")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), id)
	if err != nil {
		// The book can vanish between the two lookups.
		if errors.Is(err, review.ErrBookNotFound) {
			httpx.Error(w, http.StatusNotFound, "Book not found")
			return
		}
		serverError(w, r, h.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bookDetail{Book: b, Reviews: reviews})
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := ValidateStruct(req); errs != nil {
		httpx.Error(w, http.StatusBadRequest, "Title and author are required")
		return
	}

	// An empty isbn means "no isbn"; storing it would collide on the
	// unique index for every subsequent book without one.
	if req.ISBN != nil && *req.ISBN == "" {
		req.ISBN = nil
	}

	b := book.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	}
	if err := h.books.Create(r.Context(), &b); err != nil {
		switch {
		case errors.Is(err, book.ErrDuplicateISBN):
			httpx.Error(w, http.StatusBadRequest, "Book with this ISBN already exists")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Book not found")
		return
	}

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	b, err := h.books.Update(r.Context(), id, book.Update{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "Book not found")
		case errors.Is(err, book.ErrDuplicateISBN):
			httpx.Error(w, http.StatusBadRequest, "Book with this ISBN already exists")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Book not found")
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "Book not found")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	httpx.Message(w, http.StatusOK, "Book deleted successfully")
}
