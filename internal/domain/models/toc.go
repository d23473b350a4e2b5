package models

// Heading is one accepted heading from a markdown render, in document order.
// IDs are unique within a single render.
type Heading struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// RenderedContent is the ephemeral output of a markdown render. It is
// recomputed on every request and never persisted.
type RenderedContent struct {
	HTML     string    `json:"html"`
	Headings []Heading `json:"headings"`
}

// TOCEntry is a manually authored table-of-contents row. Entries form a
// forest per book via ParentID; (book, order, parent) is unique, so siblings
// always have distinct order values.
type TOCEntry struct {
	ID        string  `json:"id" db:"id"`
	BookID    string  `json:"book_id" db:"book_id"`
	ChapterID *string `json:"chapter_id" db:"chapter_id"` // informational link, not structural
	Title     string  `json:"title" db:"title"`
	Level     int     `json:"level" db:"level"`
	Order     int     `json:"order" db:"sort_order"`
	ParentID  *string `json:"parent_id" db:"parent_id"`
	AnchorID  *string `json:"anchor_id" db:"anchor_id"`
}

// TOCNode is one node of the final TOC payload.
//
// Two shapes share this type: numbered tree nodes built from manual entries
// (Number set, Children attached when present) and flat auto-generated
// entries carried over from a render's headings (Number empty, no children).
// Empty fields are omitted so the flat form serializes as {id, title, level}.
type TOCNode struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Level    int        `json:"level"`
	Number   string     `json:"number,omitempty"`
	Children []*TOCNode `json:"children,omitempty"`
}
