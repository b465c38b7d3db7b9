package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bookreviews/internal/httpx"
	"bookreviews/internal/review"
)

type ReviewHandler struct {
	reviews review.Repository
	logger  *slog.Logger
}

func NewReviewHandler(reviews review.Repository, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

type createReviewRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Rating   *int   `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookID, err := readIDParam(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Book not found")
		return
	}

	// Resolve the book before looking at the body; a missing book
	// answers 404 even when the payload would not validate.
	if err := h.reviews.Exists(r.Context(), bookID); err != nil {
		switch {
		case errors.Is(err, review.ErrBookNotFound):
			httpx.Error(w, http.StatusNotFound, "Book not found")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := ValidateStruct(req); errs != nil {
		if hasTag(errs, "required") {
			httpx.Error(w, http.StatusBadRequest, "User name and rating are required")
		} else {
			httpx.Error(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		}
		return
	}

	rev := review.Review{
		BookID:   bookID,
		UserName: req.UserName,
		Rating:   *req.Rating,
		Comment:  req.Comment,
	}
	if err := h.reviews.Create(r.Context(), &rev); err != nil {
		switch {
		case errors.Is(err, review.ErrBookNotFound):
			httpx.Error(w, http.StatusNotFound, "Book not found")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rev)
}

func (h *ReviewHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := readIDParam(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Book not found")
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), bookID)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrBookNotFound):
			httpx.Error(w, http.StatusNotFound, "Book not found")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Review not found")
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "Review not found")
		default:
			serverError(w, r, h.logger, err)
		}
		return
	}

	httpx.Message(w, http.StatusOK, "Review deleted successfully")
}
