package repositories

import (
	"context"

	"folio/internal/domain/models"
)

// BookRepository provides access to the book catalog.
type BookRepository interface {
	// Create inserts a new book. The book's ID must be set by the caller.
	Create(ctx context.Context, book *models.Book) error

	// GetByID retrieves a book regardless of publication state.
	// Publication filtering is an access concern and happens in the gate.
	GetByID(ctx context.Context, id string) (*models.Book, error)

	// List returns books ordered by creation time, newest first.
	// When publishedOnly is true, unpublished books are excluded.
	List(ctx context.Context, publishedOnly bool) ([]models.Book, error)

	// ListByIDs returns the books whose IDs appear in ids. Missing IDs are
	// silently skipped.
	ListByIDs(ctx context.Context, ids []string) ([]models.Book, error)

	// Update persists all mutable fields of the book.
	Update(ctx context.Context, book *models.Book) error

	// Delete removes a book and, via cascade, its chapters, TOC entries,
	// links and access records.
	Delete(ctx context.Context, id string) error
}

// ChapterRepository provides access to book chapters.
type ChapterRepository interface {
	Create(ctx context.Context, chapter *models.Chapter) error

	GetByID(ctx context.Context, id string) (*models.Chapter, error)

	// ListByBook returns the book's chapters ordered by (order, id).
	// When previewOnly is true, only preview-flagged chapters are returned.
	ListByBook(ctx context.Context, bookID string, previewOnly bool) ([]models.Chapter, error)

	Update(ctx context.Context, chapter *models.Chapter) error

	Delete(ctx context.Context, id string) error
}

// TOCRepository provides access to manually authored TOC entries.
type TOCRepository interface {
	Create(ctx context.Context, entry *models.TOCEntry) error

	GetByID(ctx context.Context, id string) (*models.TOCEntry, error)

	// ListByBook returns all of the book's entries ordered by (order, id).
	ListByBook(ctx context.Context, bookID string) ([]models.TOCEntry, error)

	Update(ctx context.Context, entry *models.TOCEntry) error

	Delete(ctx context.Context, id string) error
}

// YouTubeLinkRepository provides access to a book's companion video links.
type YouTubeLinkRepository interface {
	Create(ctx context.Context, link *models.YouTubeLink) error

	GetByID(ctx context.Context, id string) (*models.YouTubeLink, error)

	// ListByBook returns the book's links ordered by (order, id).
	ListByBook(ctx context.Context, bookID string) ([]models.YouTubeLink, error)

	Update(ctx context.Context, link *models.YouTubeLink) error

	Delete(ctx context.Context, id string) error
}
