package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
	"folio/internal/domain/services"
)

// adminUserService implements the admin-only AdminUserService interface.
type adminUserService struct {
	userRepo   repositories.UserRepository
	bookRepo   repositories.BookRepository
	accessRepo repositories.AccessRepository
	logger     *slog.Logger
}

// NewAdminUserService creates the admin account management service.
func NewAdminUserService(
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	accessRepo repositories.AccessRepository,
	logger *slog.Logger,
) services.AdminUserService {
	return &adminUserService{
		userRepo:   userRepo,
		bookRepo:   bookRepo,
		accessRepo: accessRepo,
		logger:     logger,
	}
}

// ListUsers returns all accounts with their access summaries.
func (s *adminUserService) ListUsers(ctx context.Context, viewerID, search string) ([]models.UserDetail, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	details := make([]models.UserDetail, 0, len(users))
	for _, u := range users {
		detail, err := s.expandUser(ctx, u)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// GetUser returns one account with expanded access records.
func (s *adminUserService) GetUser(ctx context.Context, viewerID, userID string) (*models.UserDetail, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expandUser(ctx, *user)
}

// ToggleBlock flips the account-level block flag. Admin accounts cannot be
// blocked.
func (s *adminUserService) ToggleBlock(ctx context.Context, viewerID, userID string) (*models.User, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, fmt.Errorf("%w: cannot block admin users", domain.ErrValidation)
	}

	user.IsBlocked = !user.IsBlocked
	if err := s.userRepo.SetBlocked(ctx, user.ID, user.IsBlocked); err != nil {
		return nil, err
	}

	s.logger.Info("user block toggled",
		"user_id", user.ID,
		"blocked", user.IsBlocked,
		"admin_id", viewerID,
	)
	return user, nil
}

// BulkAccess applies a grant or revoke across every (user, book) pair.
// Unknown ids are reported in the result rather than failing the batch.
func (s *adminUserService) BulkAccess(ctx context.Context, viewerID string, req *services.BulkAccessRequest) (*models.BulkAccessResult, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	if err := validateBulkAccess(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	result := &models.BulkAccessResult{Errors: []string{}}

	books, err := s.bookRepo.ListByIDs(ctx, req.BookIDs)
	if err != nil {
		return nil, err
	}

	for _, userID := range req.UserIDs {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("user %s: %v", userID, err))
			continue
		}
		for _, book := range books {
			switch req.Action {
			case services.AccessActionGrant:
				created, err := s.accessRepo.Grant(ctx, userID, book.ID)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("grant %s/%s: %v", userID, book.ID, err))
					continue
				}
				if created {
					result.Granted++
				}
			case services.AccessActionRevoke:
				deleted, err := s.accessRepo.Revoke(ctx, userID, book.ID)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("revoke %s/%s: %v", userID, book.ID, err))
					continue
				}
				if deleted {
					result.Revoked++
				}
			}
		}
	}

	s.logger.Info("bulk access applied",
		"action", req.Action,
		"granted", result.Granted,
		"revoked", result.Revoked,
		"errors", len(result.Errors),
		"admin_id", viewerID,
	)
	return result, nil
}

// expandUser attaches access records to an account.
func (s *adminUserService) expandUser(ctx context.Context, user models.User) (*models.UserDetail, error) {
	grants, err := s.accessRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.BookID)
	}
	books, err := s.bookRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}

	records := make([]models.UserAccessRecord, 0, len(grants))
	for _, g := range grants {
		records = append(records, models.UserAccessRecord{
			BookID:     g.BookID,
			BookTitle:  titles[g.BookID],
			UnlockedAt: g.UnlockedAt,
		})
	}

	return &models.UserDetail{
		User:            user,
		BookAccessCount: len(records),
		BookAccesses:    records,
	}, nil
}

func validateBulkAccess(req *services.BulkAccessRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserIDs,
			validation.Required,
			validation.Each(is.UUID),
		),
		validation.Field(&req.BookIDs,
			validation.Required,
			validation.Each(is.UUID),
		),
		validation.Field(&req.Action,
			validation.Required,
			validation.In(services.AccessActionGrant, services.AccessActionRevoke),
		),
	)
}
