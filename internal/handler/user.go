package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/domain/services"
	"folio/internal/httputil"
)

// UserHandler handles the admin account management endpoints
type UserHandler struct {
	userService services.AdminUserService
	logger      *slog.Logger
}

// NewUserHandler creates a new admin user handler
func NewUserHandler(userService services.AdminUserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers retrieves accounts with access summaries
// GET /api/admin/users?search=
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	users, err := h.userService.ListUsers(r.Context(), httputil.GetUserID(r), search)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}

// GetUser retrieves one account with expanded access records
// GET /api/admin/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// ToggleBlock flips the account-level block flag
// POST /api/admin/users/{id}/toggle-block
func (h *UserHandler) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ToggleBlock(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// BulkAccess applies a grant or revoke across user x book pairs
// POST /api/admin/access/bulk
func (h *UserHandler) BulkAccess(w http.ResponseWriter, r *http.Request) {
	var req services.BulkAccessRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.userService.BulkAccess(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
