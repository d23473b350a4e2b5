package service

import (
	"context"
	"errors"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
	"folio/internal/service/access"
)

// resolveViewer loads the account behind viewerID and maps it to gate
// flags. An empty id is unauthenticated; a token whose account row is gone
// maps to unauthorized.
func resolveViewer(ctx context.Context, users repositories.UserRepository, viewerID string) (access.Viewer, *models.User, error) {
	if viewerID == "" {
		return access.Viewer{}, nil, &domain.UnauthorizedError{Message: "authentication required"}
	}
	user, err := users.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return access.Viewer{}, nil, &domain.UnauthorizedError{Message: "unknown account"}
		}
		return access.Viewer{}, nil, err
	}
	return access.Viewer{
		Authenticated: true,
		Blocked:       user.IsBlocked,
		Staff:         user.IsStaff,
		Superuser:     user.IsSuperuser,
	}, user, nil
}

// requireAdmin resolves the viewer and requires staff AND superuser.
// Blocked accounts are denied before the admin check; the account block
// is absolute.
func requireAdmin(ctx context.Context, users repositories.UserRepository, viewerID string) (*models.User, error) {
	viewer, user, err := resolveViewer(ctx, users, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.Blocked {
		return nil, &domain.ForbiddenError{Message: "your account is blocked"}
	}
	if !viewer.Admin() {
		return nil, &domain.ForbiddenError{Message: "admin access required"}
	}
	return user, nil
}
