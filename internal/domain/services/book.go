package services

import (
	"context"

	"folio/internal/domain/models"
)

// BookService is the reader-facing surface: listing, detail, reading and
// rendered content, all gated per viewer.
type BookService interface {
	// ListBooks returns the catalog visible to the viewer. Admins see
	// unpublished books; everyone else sees published only. IsLocked is
	// computed per viewer.
	ListBooks(ctx context.Context, viewerID string) ([]models.BookSummary, error)

	// GetBookDetail returns the detail payload. Viewers without a grant for
	// a published book still receive a preview payload (preview chapters
	// only, content file withheld) rather than a hard deny.
	GetBookDetail(ctx context.Context, viewerID, bookID string) (*models.BookDetail, error)

	// ReadBook is the strict read endpoint: full detail or a forbidden/
	// not-found error. No preview fallback.
	ReadBook(ctx context.Context, viewerID, bookID string) (*models.BookDetail, error)

	// GetBookContent returns the rendered content payload {id, title, html,
	// toc, toc_position}, gated the same way as ReadBook.
	GetBookContent(ctx context.Context, viewerID, bookID string) (*models.BookContent, error)

	// ListPurchasedBooks returns the books the viewer holds grants for.
	// Admins get the entire catalog.
	ListPurchasedBooks(ctx context.Context, viewerID string) ([]models.BookSummary, error)
}
