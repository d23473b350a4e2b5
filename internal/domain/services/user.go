package services

import (
	"context"

	"folio/internal/domain/models"
)

// Bulk access actions.
const (
	AccessActionGrant  = "grant"
	AccessActionRevoke = "revoke"
)

// BulkAccessRequest grants or revokes access for every (user, book) pair in
// the cross product of the two id lists.
type BulkAccessRequest struct {
	UserIDs []string `json:"user_ids"`
	BookIDs []string `json:"book_ids"`
	Action  string   `json:"action"` // grant | revoke
}

// AdminUserService is the admin-only account management surface.
type AdminUserService interface {
	// ListUsers returns all accounts, newest first, optionally filtered by
	// a search term matched against name, email and phone.
	ListUsers(ctx context.Context, viewerID, search string) ([]models.UserDetail, error)

	// GetUser returns one account with expanded access records.
	GetUser(ctx context.Context, viewerID, userID string) (*models.UserDetail, error)

	// ToggleBlock flips the account-level block flag. Blocking an admin
	// account is rejected with a validation error.
	ToggleBlock(ctx context.Context, viewerID, userID string) (*models.User, error)

	// BulkAccess applies a grant or revoke across user x book pairs and
	// reports how many records actually changed.
	BulkAccess(ctx context.Context, viewerID string, req *BulkAccessRequest) (*models.BulkAccessResult, error)
}
