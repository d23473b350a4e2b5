package services

import "folio/internal/domain/models"

// MarkdownRenderer converts raw markdown into sanitized HTML plus the
// ordered list of accepted headings (the auto-TOC).
//
// Implementations must be pure and deterministic: the same input always
// produces byte-identical output, including id assignment. Malformed
// markdown degrades to best-effort HTML - there is no error channel.
type MarkdownRenderer interface {
	// Render processes markdown text. Empty or whitespace-only input yields
	// {HTML: "", Headings: nil} without touching the parser.
	Render(markdown string) *models.RenderedContent
}

// TOCBuilder turns a book's flat set of manually authored TOC entries into
// a numbered hierarchical tree ("1", "1.1", "1.2.1", ...).
//
// Precondition: the entries belong to one book and their parent links are
// acyclic (enforced upstream by referential constraints). Entries whose
// parent is missing from the set are unreachable from any root and are
// dropped; cycles are likewise never visited, so the build terminates
// regardless, but cyclic input is a precondition violation and its output
// is unspecified beyond termination.
type TOCBuilder interface {
	BuildManualTree(entries []models.TOCEntry) []*models.TOCNode
}
