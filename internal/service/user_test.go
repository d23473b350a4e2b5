package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/services"
)

func newAdminUserFixture(t *testing.T) (*serviceFixture, services.AdminUserService) {
	t.Helper()
	f := newServiceFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewAdminUserService(f.users, f.books, f.access, logger)
	return f, svc
}

func TestListUsers_RequiresAdmin(t *testing.T) {
	_, svc := newAdminUserFixture(t)

	_, err := svc.ListUsers(context.Background(), readerID, "")
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestListUsers_ExpandsAccess(t *testing.T) {
	f, svc := newAdminUserFixture(t)
	f.addBook(t, publishedBook("b1"))
	f.access.Grant(context.Background(), readerID, "b1")

	users, err := svc.ListUsers(context.Background(), adminID, "")
	if err != nil {
		t.Fatal(err)
	}

	var reader *models.UserDetail
	for i := range users {
		if users[i].ID == readerID {
			reader = &users[i]
		}
	}
	if reader == nil {
		t.Fatal("reader missing from listing")
	}
	if reader.BookAccessCount != 1 || len(reader.BookAccesses) != 1 {
		t.Fatalf("access count = %d, want 1", reader.BookAccessCount)
	}
	if reader.BookAccesses[0].BookTitle != "Book b1" {
		t.Errorf("book title = %q", reader.BookAccesses[0].BookTitle)
	}
}

func TestToggleBlock(t *testing.T) {
	_, svc := newAdminUserFixture(t)

	user, err := svc.ToggleBlock(context.Background(), adminID, readerID)
	if err != nil {
		t.Fatal(err)
	}
	if !user.IsBlocked {
		t.Error("first toggle should block")
	}

	user, err = svc.ToggleBlock(context.Background(), adminID, readerID)
	if err != nil {
		t.Fatal(err)
	}
	if user.IsBlocked {
		t.Error("second toggle should unblock")
	}
}

func TestToggleBlock_AdminAccountRejected(t *testing.T) {
	f, svc := newAdminUserFixture(t)
	f.users.Insert(context.Background(), &models.User{
		ID: "admin-2", Email: "a2@test", IsStaff: true, IsSuperuser: true,
	})

	_, err := svc.ToggleBlock(context.Background(), adminID, "admin-2")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestBulkAccess_GrantAndRevoke(t *testing.T) {
	f, svc := newAdminUserFixture(t)
	f.addBook(t, publishedBook("11111111-1111-4111-8111-111111111111"))
	f.addBook(t, publishedBook("22222222-2222-4222-8222-222222222222"))
	f.users.Insert(context.Background(), &models.User{
		ID: "33333333-3333-4333-8333-333333333333", Email: "u1@test",
	})
	f.users.Insert(context.Background(), &models.User{
		ID: "44444444-4444-4444-8444-444444444444", Email: "u2@test",
	})

	userIDs := []string{
		"33333333-3333-4333-8333-333333333333",
		"44444444-4444-4444-8444-444444444444",
	}
	bookIDs := []string{
		"11111111-1111-4111-8111-111111111111",
		"22222222-2222-4222-8222-222222222222",
	}

	result, err := svc.BulkAccess(context.Background(), adminID, &services.BulkAccessRequest{
		UserIDs: userIDs,
		BookIDs: bookIDs,
		Action:  services.AccessActionGrant,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Granted != 4 {
		t.Fatalf("granted = %d, want 4", result.Granted)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("errors = %v", result.Errors)
	}

	// Repeating the grant changes nothing.
	result, err = svc.BulkAccess(context.Background(), adminID, &services.BulkAccessRequest{
		UserIDs: userIDs,
		BookIDs: bookIDs,
		Action:  services.AccessActionGrant,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Granted != 0 {
		t.Fatalf("repeat granted = %d, want 0", result.Granted)
	}

	// Revoke one user's grants.
	result, err = svc.BulkAccess(context.Background(), adminID, &services.BulkAccessRequest{
		UserIDs: userIDs[:1],
		BookIDs: bookIDs,
		Action:  services.AccessActionRevoke,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Revoked != 2 {
		t.Fatalf("revoked = %d, want 2", result.Revoked)
	}
}

func TestBulkAccess_UnknownUserReported(t *testing.T) {
	f, svc := newAdminUserFixture(t)
	f.addBook(t, publishedBook("11111111-1111-4111-8111-111111111111"))

	result, err := svc.BulkAccess(context.Background(), adminID, &services.BulkAccessRequest{
		UserIDs: []string{"99999999-9999-4999-8999-999999999999"},
		BookIDs: []string{"11111111-1111-4111-8111-111111111111"},
		Action:  services.AccessActionGrant,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Granted != 0 {
		t.Errorf("granted = %d, want 0", result.Granted)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want one entry for the unknown user", result.Errors)
	}
}

func TestBulkAccess_ValidatesAction(t *testing.T) {
	_, svc := newAdminUserFixture(t)

	_, err := svc.BulkAccess(context.Background(), adminID, &services.BulkAccessRequest{
		UserIDs: []string{"33333333-3333-4333-8333-333333333333"},
		BookIDs: []string{"11111111-1111-4111-8111-111111111111"},
		Action:  "unlock",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}
