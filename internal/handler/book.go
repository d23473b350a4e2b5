package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/domain/services"
	"folio/internal/httputil"
)

// BookHandler handles the reader-facing book endpoints
type BookHandler struct {
	bookService services.BookService
	logger      *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService services.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// HealthCheck reports liveness
// GET /health
func (h *BookHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListBooks retrieves the catalog visible to the viewer
// GET /api/books
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.ListBooks(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, books)
}

// GetBook retrieves the book detail, falling back to a preview payload for
// viewers without a grant
// GET /api/books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	detail, err := h.bookService.GetBookDetail(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// ReadBook retrieves the full detail, no preview fallback
// GET /api/books/{id}/read
func (h *BookHandler) ReadBook(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	detail, err := h.bookService.ReadBook(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// GetContent retrieves the rendered content payload
// GET /api/books/{id}/content
func (h *BookHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	content, err := h.bookService.GetBookContent(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// ListPurchased retrieves the viewer's unlocked books
// GET /api/books/purchased
func (h *BookHandler) ListPurchased(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.ListPurchasedBooks(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, books)
}
