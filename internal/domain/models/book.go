package models

import "time"

// TOC display position hints. Stored per book, passed through to clients
// unchanged - the backend never enforces them.
const (
	TOCPositionSidebar = "sidebar"
	TOCPositionTop     = "top"
	TOCPositionBottom  = "bottom"
	TOCPositionNone    = "none"
)

// ValidTOCPositions lists the accepted toc_position values.
var ValidTOCPositions = []interface{}{
	TOCPositionSidebar,
	TOCPositionTop,
	TOCPositionBottom,
	TOCPositionNone,
}

type Book struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	Description     string    `json:"description" db:"description"`
	CoverImage      *string   `json:"cover_image" db:"cover_image"`
	ContentFile     *string   `json:"content_file" db:"content_file"` // legacy file reference
	MarkdownContent *string   `json:"markdown_content" db:"markdown_content"`
	Price           float64   `json:"price" db:"price"`
	IsPublished     bool      `json:"is_published" db:"is_published"`
	TOCPosition     string    `json:"toc_position" db:"toc_position"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type Chapter struct {
	ID              string  `json:"id" db:"id"`
	BookID          string  `json:"book_id" db:"book_id"`
	Title           string  `json:"title" db:"title"`
	Order           int     `json:"order" db:"sort_order"`
	MarkdownContent *string `json:"markdown_content" db:"markdown_content"`
	IsPreview       bool    `json:"is_preview" db:"is_preview"`
	VoiceFile       *string `json:"voice_file" db:"voice_file"`
}

type YouTubeLink struct {
	ID     string `json:"id" db:"id"`
	BookID string `json:"book_id" db:"book_id"`
	Title  string `json:"title" db:"title"`
	URL    string `json:"url" db:"url"`
	Order  int    `json:"order" db:"sort_order"`
}

// BookAccess records that a user has purchased/unlocked a book.
type BookAccess struct {
	UserID     string    `json:"user_id" db:"user_id"`
	BookID     string    `json:"book_id" db:"book_id"`
	UnlockedAt time.Time `json:"unlocked_at" db:"unlocked_at"`
}
