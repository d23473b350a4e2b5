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

func newCatalogFixture(t *testing.T) (*serviceFixture, services.CatalogService) {
	t.Helper()
	f := newServiceFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewCatalogService(f.books, f.chapters, f.tocs, f.links, f.users, logger)
	return f, svc
}

func TestCreateBook_RequiresAdmin(t *testing.T) {
	_, svc := newCatalogFixture(t)

	_, err := svc.CreateBook(context.Background(), readerID, &services.CreateBookRequest{
		Title:  "Denied",
		Author: "Nobody",
	})
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestCreateBook_Defaults(t *testing.T) {
	_, svc := newCatalogFixture(t)

	book, err := svc.CreateBook(context.Background(), adminID, &services.CreateBookRequest{
		Title:  "New Title",
		Author: "A. Writer",
	})
	if err != nil {
		t.Fatal(err)
	}

	if book.ID == "" {
		t.Error("created book needs a generated id")
	}
	if !book.IsPublished {
		t.Error("books publish by default")
	}
	if book.TOCPosition != models.TOCPositionSidebar {
		t.Errorf("toc position = %q, want sidebar default", book.TOCPosition)
	}
}

func TestCreateBook_RejectsBadTOCPosition(t *testing.T) {
	_, svc := newCatalogFixture(t)

	_, err := svc.CreateBook(context.Background(), adminID, &services.CreateBookRequest{
		Title:       "Bad",
		Author:      "A. Writer",
		TOCPosition: "floating",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestUpdateBook_PartialUpdate(t *testing.T) {
	f, svc := newCatalogFixture(t)
	book := publishedBook("b1")
	f.addBook(t, book)

	title := "Renamed"
	published := false
	got, err := svc.UpdateBook(context.Background(), adminID, "b1", &services.UpdateBookRequest{
		Title:       &title,
		IsPublished: &published,
	})
	if err != nil {
		t.Fatal(err)
	}

	if got.Title != "Renamed" || got.IsPublished {
		t.Errorf("updated = %+v", got)
	}
	// Untouched fields survive.
	if got.Author != book.Author {
		t.Errorf("author changed: %q", got.Author)
	}
}

func TestCreateChapter_UnknownBook(t *testing.T) {
	_, svc := newCatalogFixture(t)

	_, err := svc.CreateChapter(context.Background(), adminID, &services.CreateChapterRequest{
		BookID: "11111111-1111-4111-8111-111111111111",
		Title:  "Orphan",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestCreateTOCEntry_ParentMustShareBook(t *testing.T) {
	f, svc := newCatalogFixture(t)
	bookA := "11111111-1111-4111-8111-111111111111"
	bookB := "22222222-2222-4222-8222-222222222222"
	f.addBook(t, publishedBook(bookA))
	f.addBook(t, publishedBook(bookB))

	parent, err := svc.CreateTOCEntry(context.Background(), adminID, &services.CreateTOCEntryRequest{
		BookID: bookA,
		Title:  "Part One",
		Level:  1,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.CreateTOCEntry(context.Background(), adminID, &services.CreateTOCEntryRequest{
		BookID:   bookB,
		Title:    "Stray Child",
		Level:    2,
		ParentID: &parent.ID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error for cross-book parent", err)
	}
}

func TestUpdateTOCEntry_RejectsSelfParent(t *testing.T) {
	f, svc := newCatalogFixture(t)
	bookA := "11111111-1111-4111-8111-111111111111"
	f.addBook(t, publishedBook(bookA))

	entry, err := svc.CreateTOCEntry(context.Background(), adminID, &services.CreateTOCEntryRequest{
		BookID: bookA,
		Title:  "Part One",
		Level:  1,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.UpdateTOCEntry(context.Background(), adminID, entry.ID, &services.UpdateTOCEntryRequest{
		ParentID: &entry.ID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error for self parent", err)
	}
}

func TestCreateYouTubeLink_ValidatesURL(t *testing.T) {
	f, svc := newCatalogFixture(t)
	bookA := "11111111-1111-4111-8111-111111111111"
	f.addBook(t, publishedBook(bookA))

	_, err := svc.CreateYouTubeLink(context.Background(), adminID, &services.CreateYouTubeLinkRequest{
		BookID: bookA,
		Title:  "Broken",
		URL:    "not a url",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}

	link, err := svc.CreateYouTubeLink(context.Background(), adminID, &services.CreateYouTubeLinkRequest{
		BookID: bookA,
		Title:  "Walkthrough",
		URL:    "https://www.youtube.com/watch?v=abc123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if link.ID == "" {
		t.Error("created link needs a generated id")
	}
}
