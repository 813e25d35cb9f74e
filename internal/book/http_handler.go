package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookreviews/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createBookReq struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn" validate:"required"`
}

// List handles GET /books
// @Summary List all books
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "No books found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Error retrieving books", nil)
		return
	}
	httpx.JSONSuccess(w, books)
}

// Create handles POST /books
// @Summary Add a book to the catalog
// @Tags books
// @Accept json
// @Produce json
// @Param request body createBookReq true "Book fields"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	// Missing required fields surface as a 500, matching the store-side
	// schema rejection of the original system.
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusInternalServerError, "VALIDATION_ERROR", "Missing required book fields", validationErrors)
		return
	}

	b := Book{Title: req.Title, Author: req.Author, ISBN: req.ISBN}
	if err := h.service.Create(r.Context(), &b); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccessCreated(w, b)
}

// Update handles PATCH /books/{id}
// @Summary Partially update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book id"
// @Param request body Update true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	b, err := h.service.Update(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, b)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book by id
// @Tags books
// @Produce json
// @Param id path string true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"message": "Book deleted"})
}

// GetByISBN handles GET /books/isbn/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, b)
}

// GetByAuthor handles GET /books/author/{author}
func (h *HTTPHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.FindByAuthor(r.Context(), r.PathValue("author"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Books not found by this author", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, books)
}

// GetByTitle handles GET /books/title/{title}
func (h *HTTPHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.FindByTitle(r.Context(), r.PathValue("title"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Books not found with this title", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, books)
}

// GetByReviewText handles GET /books/review/{reviewText}
func (h *HTTPHandler) GetByReviewText(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.FindByReviewText(r.Context(), r.PathValue("reviewText"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "No books found with this review text", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, books)
}

// ListReviewsByTitle handles GET /books/title/{title}/reviews
func (h *HTTPHandler) ListReviewsByTitle(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ReviewsByTitle(r.Context(), r.PathValue("title"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, reviews)
}

type addReviewReq struct {
	Rating int    `json:"rating" validate:"required"`
	Review string `json:"review" validate:"required"`
}

// AddReview handles POST /books/title/{title}/reviews
// @Summary Add a review to a book resolved by title
// @Tags reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param title path string true "Title substring"
// @Param request body addReviewReq true "Review fields"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/title/{title}/reviews [post]
func (h *HTTPHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "No token, authorization denied", nil)
		return
	}

	var req addReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusInternalServerError, "VALIDATION_ERROR", "Missing required review fields", validationErrors)
		return
	}

	rev, err := h.service.AddReview(r.Context(), r.PathValue("title"), req.Rating, req.Review, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	httpx.JSONSuccessCreated(w, rev)
}

// DeleteReviewsForBook handles DELETE /books/reviews/book/{bookId}
// @Summary Bulk-delete the reviews referencing a book
// @Tags reviews
// @Produce plain
// @Param bookId path string true "Book id"
// @Success 200 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /books/reviews/book/{bookId} [delete]
func (h *HTTPHandler) DeleteReviewsForBook(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.DeleteReviewsForBook(r.Context(), r.PathValue("bookId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Text(w, http.StatusNotFound, "No reviews found for this book")
			return
		}
		httpx.Text(w, http.StatusInternalServerError, "An error occurred while deleting the reviews")
		return
	}
	httpx.Text(w, http.StatusOK, "Reviews deleted successfully")
}
