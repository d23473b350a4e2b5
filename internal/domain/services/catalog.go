package services

import (
	"context"

	"folio/internal/domain/models"
)

// CreateBookRequest carries the fields for a new book.
type CreateBookRequest struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Description     string  `json:"description"`
	CoverImage      *string `json:"cover_image,omitempty"`
	MarkdownContent *string `json:"markdown_content,omitempty"`
	Price           float64 `json:"price"`
	IsPublished     *bool   `json:"is_published,omitempty"` // default true
	TOCPosition     string  `json:"toc_position,omitempty"` // default sidebar
}

// UpdateBookRequest carries partial book updates. Nil fields are unchanged.
type UpdateBookRequest struct {
	Title           *string  `json:"title,omitempty"`
	Author          *string  `json:"author,omitempty"`
	Description     *string  `json:"description,omitempty"`
	CoverImage      *string  `json:"cover_image,omitempty"`
	MarkdownContent *string  `json:"markdown_content,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	IsPublished     *bool    `json:"is_published,omitempty"`
	TOCPosition     *string  `json:"toc_position,omitempty"`
}

type CreateChapterRequest struct {
	BookID          string  `json:"book_id"`
	Title           string  `json:"title"`
	Order           int     `json:"order"`
	MarkdownContent *string `json:"markdown_content,omitempty"`
	IsPreview       bool    `json:"is_preview"`
}

type UpdateChapterRequest struct {
	Title           *string `json:"title,omitempty"`
	Order           *int    `json:"order,omitempty"`
	MarkdownContent *string `json:"markdown_content,omitempty"`
	IsPreview       *bool   `json:"is_preview,omitempty"`
}

type CreateTOCEntryRequest struct {
	BookID    string  `json:"book_id"`
	ChapterID *string `json:"chapter_id,omitempty"`
	Title     string  `json:"title"`
	Level     int     `json:"level"`
	Order     int     `json:"order"`
	ParentID  *string `json:"parent_id,omitempty"`
	AnchorID  *string `json:"anchor_id,omitempty"`
}

type UpdateTOCEntryRequest struct {
	ChapterID *string `json:"chapter_id,omitempty"`
	Title     *string `json:"title,omitempty"`
	Level     *int    `json:"level,omitempty"`
	Order     *int    `json:"order,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	AnchorID  *string `json:"anchor_id,omitempty"`
}

type CreateYouTubeLinkRequest struct {
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Order  int    `json:"order"`
}

type UpdateYouTubeLinkRequest struct {
	Title *string `json:"title,omitempty"`
	URL   *string `json:"url,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// CatalogService is the admin-only editorial surface for books, chapters,
// TOC entries and companion links. Every operation requires an admin viewer
// and returns ErrForbidden otherwise.
type CatalogService interface {
	ListAllBooks(ctx context.Context, viewerID string) ([]models.Book, error)
	GetBook(ctx context.Context, viewerID, bookID string) (*models.Book, error)
	CreateBook(ctx context.Context, viewerID string, req *CreateBookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, viewerID, bookID string, req *UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, viewerID, bookID string) error

	ListChapters(ctx context.Context, viewerID, bookID string) ([]models.Chapter, error)
	CreateChapter(ctx context.Context, viewerID string, req *CreateChapterRequest) (*models.Chapter, error)
	UpdateChapter(ctx context.Context, viewerID, chapterID string, req *UpdateChapterRequest) (*models.Chapter, error)
	DeleteChapter(ctx context.Context, viewerID, chapterID string) error

	ListTOCEntries(ctx context.Context, viewerID, bookID string) ([]models.TOCEntry, error)
	CreateTOCEntry(ctx context.Context, viewerID string, req *CreateTOCEntryRequest) (*models.TOCEntry, error)
	UpdateTOCEntry(ctx context.Context, viewerID, entryID string, req *UpdateTOCEntryRequest) (*models.TOCEntry, error)
	DeleteTOCEntry(ctx context.Context, viewerID, entryID string) error

	CreateYouTubeLink(ctx context.Context, viewerID string, req *CreateYouTubeLinkRequest) (*models.YouTubeLink, error)
	UpdateYouTubeLink(ctx context.Context, viewerID, linkID string, req *UpdateYouTubeLinkRequest) (*models.YouTubeLink, error)
	DeleteYouTubeLink(ctx context.Context, viewerID, linkID string) error
}
