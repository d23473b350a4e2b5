package config

const (
	// MaxBookTitleLength is the maximum length for book titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxBookTitleLength = 255

	// MaxAuthorNameLength is the maximum length for author names.
	// Same as book titles for consistency.
	MaxAuthorNameLength = 255

	// MaxChapterTitleLength is the maximum length for chapter titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxChapterTitleLength = 255

	// MaxTOCTitleLength is the maximum length for table-of-contents
	// entry titles. Same as chapter titles for consistency.
	MaxTOCTitleLength = 255

	// MaxLinkTitleLength is the maximum length for video link titles.
	MaxLinkTitleLength = 255
)
