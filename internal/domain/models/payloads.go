package models

// Response payload shapes for the reader surface. These are built by
// explicit per-outcome builders in the book service rather than by mutating
// a shared map, so each access outcome has exactly one payload shape.

// BookSummary is the list-view payload.
type BookSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	CoverImage  *string `json:"cover_image"`
	Price       float64 `json:"price"`
	IsPublished bool    `json:"is_published"`
	IsLocked    bool    `json:"is_locked"`
}

// ChapterView is a chapter as embedded in the detail payload. HTML and TOC
// are derived from the chapter's own markdown on every request.
type ChapterView struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Order           int        `json:"order"`
	MarkdownContent *string    `json:"markdown_content"`
	HTML            *string    `json:"html"`
	TOC             []*TOCNode `json:"toc"`
	IsPreview       bool       `json:"is_preview"`
	VoiceFile       *string    `json:"voice_file"`
}

// BookDetail is the full detail payload. For locked (preview) responses,
// Chapters holds preview chapters only and ContentFile is forced to nil.
type BookDetail struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Author          string        `json:"author"`
	Description     string        `json:"description"`
	CoverImage      *string       `json:"cover_image"`
	ContentFile     *string       `json:"content_file"`
	MarkdownContent *string       `json:"markdown_content"`
	HTML            *string       `json:"html"`
	TOC             []*TOCNode    `json:"toc"`
	TOCPosition     string        `json:"toc_position"`
	Price           float64       `json:"price"`
	IsPublished     bool          `json:"is_published"`
	IsLocked        bool          `json:"is_locked"`
	Chapters        []ChapterView `json:"chapters"`
	YouTubeLinks    []YouTubeLink `json:"youtube_links"`
}

// BookContent is the read-view payload for the content endpoint.
type BookContent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	HTML        string     `json:"html"`
	TOC         []*TOCNode `json:"toc"`
	TOCPosition string     `json:"toc_position"`
}

// BulkAccessResult reports the effect of a bulk grant/revoke operation.
type BulkAccessResult struct {
	Granted int      `json:"granted"`
	Revoked int      `json:"revoked"`
	Errors  []string `json:"errors"`
}
