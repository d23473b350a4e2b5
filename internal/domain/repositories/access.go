package repositories

import (
	"context"

	"folio/internal/domain/models"
)

// AccessRepository provides access to purchase/grant records.
type AccessRepository interface {
	// Exists reports whether the user holds a grant for the book.
	Exists(ctx context.Context, userID, bookID string) (bool, error)

	// Grant creates a grant if absent. Returns true when a new record was
	// created, false when the grant already existed.
	Grant(ctx context.Context, userID, bookID string) (bool, error)

	// Revoke removes a grant. Returns true when a record was deleted.
	Revoke(ctx context.Context, userID, bookID string) (bool, error)

	// ListByUser returns the user's grants, most recent first.
	ListByUser(ctx context.Context, userID string) ([]models.BookAccess, error)
}

// UserRepository provides access to platform accounts.
type UserRepository interface {
	// Insert creates an account row. Production accounts are provisioned by
	// the auth provider; this exists for seed tooling.
	Insert(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)

	// List returns users ordered by join date, newest first. A non-empty
	// search filters by substring match on name, email or phone.
	List(ctx context.Context, search string) ([]models.User, error)

	// SetBlocked updates the account-level block flag.
	SetBlocked(ctx context.Context, id string, blocked bool) error
}
