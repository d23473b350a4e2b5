package toc

import (
	"encoding/json"
	"strings"
	"testing"

	"folio/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func entry(id string, order int, parentID *string) models.TOCEntry {
	return models.TOCEntry{
		ID:       id,
		BookID:   "book-1",
		Title:    "Entry " + id,
		Level:    1,
		Order:    order,
		ParentID: parentID,
	}
}

func TestBuildManualTree_Numbering(t *testing.T) {
	b := NewBuilder()

	// Roots [A(order=0), B(order=1)], B has one child C(order=0).
	entries := []models.TOCEntry{
		entry("a", 0, nil),
		entry("b", 1, nil),
		entry("c", 0, strPtr("b")),
	}

	got := b.BuildManualTree(entries)

	if len(got) != 2 {
		t.Fatalf("got %d roots, want 2", len(got))
	}
	if got[0].Number != "1" || got[0].ID != "toc-entry-a" {
		t.Errorf("root[0] = {%s %s}, want {toc-entry-a 1}", got[0].ID, got[0].Number)
	}
	if got[1].Number != "2" {
		t.Errorf("root[1].Number = %q, want %q", got[1].Number, "2")
	}
	if len(got[1].Children) != 1 {
		t.Fatalf("root[1] has %d children, want 1", len(got[1].Children))
	}
	if got[1].Children[0].Number != "2.1" {
		t.Errorf("child number = %q, want %q", got[1].Children[0].Number, "2.1")
	}
}

func TestBuildManualTree_DeepNumbering(t *testing.T) {
	b := NewBuilder()

	entries := []models.TOCEntry{
		entry("root", 0, nil),
		entry("mid", 0, strPtr("root")),
		entry("leaf1", 0, strPtr("mid")),
		entry("leaf2", 1, strPtr("mid")),
	}

	got := b.BuildManualTree(entries)

	mid := got[0].Children[0]
	if mid.Number != "1.1" {
		t.Fatalf("mid number = %q, want 1.1", mid.Number)
	}
	if len(mid.Children) != 2 {
		t.Fatalf("mid has %d children, want 2", len(mid.Children))
	}
	if mid.Children[0].Number != "1.1.1" || mid.Children[1].Number != "1.1.2" {
		t.Errorf("leaf numbers = %q, %q, want 1.1.1, 1.1.2",
			mid.Children[0].Number, mid.Children[1].Number)
	}
}

func TestBuildManualTree_SiblingOrderNotInsertionOrder(t *testing.T) {
	b := NewBuilder()

	entries := []models.TOCEntry{
		entry("second", 5, nil),
		entry("first", 1, nil),
		entry("third", 9, nil),
	}

	got := b.BuildManualTree(entries)

	wantIDs := []string{"toc-entry-first", "toc-entry-second", "toc-entry-third"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("root[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestBuildManualTree_AnchorIDPreferred(t *testing.T) {
	b := NewBuilder()

	withAnchor := entry("a", 0, nil)
	withAnchor.AnchorID = strPtr("chapter-one")
	emptyAnchor := entry("b", 1, nil)
	emptyAnchor.AnchorID = strPtr("")

	got := b.BuildManualTree([]models.TOCEntry{withAnchor, emptyAnchor})

	if got[0].ID != "chapter-one" {
		t.Errorf("got ID %q, want anchor id %q", got[0].ID, "chapter-one")
	}
	// Empty anchors fall back to the synthetic id.
	if got[1].ID != "toc-entry-b" {
		t.Errorf("got ID %q, want %q", got[1].ID, "toc-entry-b")
	}
}

func TestBuildManualTree_LeafOmitsChildren(t *testing.T) {
	b := NewBuilder()

	got := b.BuildManualTree([]models.TOCEntry{entry("only", 0, nil)})

	if got[0].Children != nil {
		t.Fatalf("leaf Children = %v, want nil", got[0].Children)
	}

	// The compact wire shape matters for output compatibility: leaves
	// serialize without a children key at all.
	raw, err := json.Marshal(got[0])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "children") {
		t.Errorf("leaf JSON should omit children: %s", raw)
	}
}

func TestBuildManualTree_DanglingParentDropped(t *testing.T) {
	b := NewBuilder()

	entries := []models.TOCEntry{
		entry("a", 0, nil),
		entry("orphan", 0, strPtr("missing")),
	}

	got := b.BuildManualTree(entries)

	if len(got) != 1 {
		t.Fatalf("got %d roots, want 1 (orphan dropped)", len(got))
	}
	if got[0].ID != "toc-entry-a" {
		t.Errorf("root ID = %q, want toc-entry-a", got[0].ID)
	}
}

func TestBuildManualTree_CycleTerminates(t *testing.T) {
	b := NewBuilder()

	// Two entries pointing at each other violate the acyclicity
	// precondition. The build must still terminate; the cycle members are
	// unreachable from any root and disappear from the output.
	entries := []models.TOCEntry{
		entry("root", 0, nil),
		entry("x", 0, strPtr("y")),
		entry("y", 1, strPtr("x")),
	}

	got := b.BuildManualTree(entries)

	if len(got) != 1 {
		t.Fatalf("got %d roots, want 1", len(got))
	}
}

func TestBuildManualTree_Empty(t *testing.T) {
	b := NewBuilder()
	if got := b.BuildManualTree(nil); len(got) != 0 {
		t.Errorf("got %d nodes for empty input, want 0", len(got))
	}
}

func TestFromHeadings(t *testing.T) {
	headings := []models.Heading{
		{ID: "intro", Title: "Intro", Level: 1},
		{ID: "setup", Title: "Setup", Level: 2},
	}

	got := FromHeadings(headings)

	if len(got) != 2 {
		t.Fatalf("got %d nodes, want 2", len(got))
	}
	for i, h := range headings {
		if got[i].ID != h.ID || got[i].Title != h.Title || got[i].Level != h.Level {
			t.Errorf("node[%d] = %+v, want %+v", i, got[i], h)
		}
		if got[i].Number != "" {
			t.Errorf("auto-generated TOC must not be numbered, got %q", got[i].Number)
		}
	}

	// Flat entries serialize as {id, title, level} only.
	raw, err := json.Marshal(got[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"intro","title":"Intro","level":1}`
	if string(raw) != want {
		t.Errorf("flat node JSON = %s, want %s", raw, want)
	}
}
