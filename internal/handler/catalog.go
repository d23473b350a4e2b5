package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/domain/services"
	"folio/internal/httputil"
)

// CatalogHandler handles the admin editorial endpoints
type CatalogHandler struct {
	catalogService services.CatalogService
	logger         *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService services.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListBooks retrieves every book including unpublished ones
// GET /api/admin/books
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalogService.ListAllBooks(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, books)
}

// GetBook retrieves one book regardless of publication state
// GET /api/admin/books/{id}
func (h *CatalogHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalogService.GetBook(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}

// CreateBook creates a new book
// POST /api/admin/books
func (h *CatalogHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.catalogService.CreateBook(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, book)
}

// UpdateBook applies a partial update to a book
// PATCH /api/admin/books/{id}
func (h *CatalogHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateBookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.catalogService.UpdateBook(r.Context(), httputil.GetUserID(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}

// DeleteBook removes a book and its dependents
// DELETE /api/admin/books/{id}
func (h *CatalogHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteBook(r.Context(), httputil.GetUserID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListChapters retrieves all chapters of a book
// GET /api/admin/books/{id}/chapters
func (h *CatalogHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.catalogService.ListChapters(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chapters)
}

// CreateChapter creates a new chapter
// POST /api/admin/chapters
func (h *CatalogHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var req services.CreateChapterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chapter, err := h.catalogService.CreateChapter(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, chapter)
}

// UpdateChapter applies a partial update to a chapter
// PATCH /api/admin/chapters/{id}
func (h *CatalogHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateChapterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chapter, err := h.catalogService.UpdateChapter(r.Context(), httputil.GetUserID(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chapter)
}

// DeleteChapter removes a chapter
// DELETE /api/admin/chapters/{id}
func (h *CatalogHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteChapter(r.Context(), httputil.GetUserID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTOCEntries retrieves all manual TOC entries of a book
// GET /api/admin/books/{id}/toc
func (h *CatalogHandler) ListTOCEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalogService.ListTOCEntries(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// CreateTOCEntry creates a manual TOC entry
// POST /api/admin/toc
func (h *CatalogHandler) CreateTOCEntry(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTOCEntryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.catalogService.CreateTOCEntry(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, entry)
}

// UpdateTOCEntry applies a partial update to a manual TOC entry
// PATCH /api/admin/toc/{id}
func (h *CatalogHandler) UpdateTOCEntry(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateTOCEntryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.catalogService.UpdateTOCEntry(r.Context(), httputil.GetUserID(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entry)
}

// DeleteTOCEntry removes a manual TOC entry
// DELETE /api/admin/toc/{id}
func (h *CatalogHandler) DeleteTOCEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteTOCEntry(r.Context(), httputil.GetUserID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateYouTubeLink creates a companion video link
// POST /api/admin/youtube-links
func (h *CatalogHandler) CreateYouTubeLink(w http.ResponseWriter, r *http.Request) {
	var req services.CreateYouTubeLinkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.catalogService.CreateYouTubeLink(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, link)
}

// UpdateYouTubeLink applies a partial update to a companion video link
// PATCH /api/admin/youtube-links/{id}
func (h *CatalogHandler) UpdateYouTubeLink(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateYouTubeLinkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.catalogService.UpdateYouTubeLink(r.Context(), httputil.GetUserID(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, link)
}

// DeleteYouTubeLink removes a companion video link
// DELETE /api/admin/youtube-links/{id}
func (h *CatalogHandler) DeleteYouTubeLink(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteYouTubeLink(r.Context(), httputil.GetUserID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
