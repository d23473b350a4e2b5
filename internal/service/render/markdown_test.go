package render

import (
	"strings"
	"testing"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	return New(DefaultConfig())
}

func TestRender_EmptyInput(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Render(tt.input)
			if got.HTML != "" {
				t.Errorf("HTML = %q, want empty", got.HTML)
			}
			if len(got.Headings) != 0 {
				t.Errorf("Headings = %v, want empty", got.Headings)
			}
		})
	}
}

func TestRender_HeadingsInDocumentOrder(t *testing.T) {
	r := newTestRenderer(t)

	input := "# Introduction\n\nSome text.\n\n## Getting Started\n\nMore text.\n\n### Install\n\n#### Verify\n"
	got := r.Render(input)

	want := []struct {
		id    string
		title string
		level int
	}{
		{"introduction", "Introduction", 1},
		{"getting-started", "Getting Started", 2},
		{"install", "Install", 3},
		{"verify", "Verify", 4},
	}

	if len(got.Headings) != len(want) {
		t.Fatalf("got %d headings, want %d: %+v", len(got.Headings), len(want), got.Headings)
	}
	for i, w := range want {
		h := got.Headings[i]
		if h.ID != w.id || h.Title != w.title || h.Level != w.level {
			t.Errorf("heading[%d] = {%s %s %d}, want {%s %s %d}",
				i, h.ID, h.Title, h.Level, w.id, w.title, w.level)
		}
	}

	// Ids must be embedded in the returned HTML.
	for _, w := range want {
		if !strings.Contains(got.HTML, `id="`+w.id+`"`) {
			t.Errorf("HTML missing id %q:\n%s", w.id, got.HTML)
		}
	}
}

func TestRender_DuplicateHeadingIds(t *testing.T) {
	r := newTestRenderer(t)

	got := r.Render("# Intro\n\n# Intro\n\n# Intro\n")

	wantIDs := []string{"intro", "intro-1", "intro-2"}
	if len(got.Headings) != len(wantIDs) {
		t.Fatalf("got %d headings, want %d", len(got.Headings), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got.Headings[i].ID != want {
			t.Errorf("heading[%d].ID = %q, want %q", i, got.Headings[i].ID, want)
		}
	}
}

func TestRender_SymbolOnlyHeadingFallback(t *testing.T) {
	r := newTestRenderer(t)

	got := r.Render("# ???\n\n# Real Title\n\n# !!!\n")

	if len(got.Headings) != 3 {
		t.Fatalf("got %d headings, want 3: %+v", len(got.Headings), got.Headings)
	}
	if got.Headings[0].ID != "heading-0" {
		t.Errorf("first heading ID = %q, want %q", got.Headings[0].ID, "heading-0")
	}
	if got.Headings[1].ID != "real-title" {
		t.Errorf("second heading ID = %q, want %q", got.Headings[1].ID, "real-title")
	}
	// Positional fallback counts accepted headings so far.
	if got.Headings[2].ID != "heading-2" {
		t.Errorf("third heading ID = %q, want %q", got.Headings[2].ID, "heading-2")
	}
}

func TestRender_DeepHeadingsIgnored(t *testing.T) {
	r := newTestRenderer(t)

	got := r.Render("# Top\n\n##### Too Deep\n")

	if len(got.Headings) != 1 {
		t.Fatalf("got %d headings, want 1: %+v", len(got.Headings), got.Headings)
	}
	if got.Headings[0].ID != "top" {
		t.Errorf("heading ID = %q, want %q", got.Headings[0].ID, "top")
	}
	// The h5 still renders, it just gets no anchor.
	if !strings.Contains(got.HTML, "Too Deep") {
		t.Errorf("h5 text missing from HTML:\n%s", got.HTML)
	}
	if strings.Contains(got.HTML, `id="too-deep"`) {
		t.Errorf("h5 should not receive an id:\n%s", got.HTML)
	}
}

func TestRender_InlineMarkupInHeadingText(t *testing.T) {
	r := newTestRenderer(t)

	got := r.Render("## The `render` *function*\n")

	if len(got.Headings) != 1 {
		t.Fatalf("got %d headings, want 1", len(got.Headings))
	}
	// Visible text only - structural markup is skipped.
	if got.Headings[0].Title != "The render function" {
		t.Errorf("title = %q, want %q", got.Headings[0].Title, "The render function")
	}
}

func TestRender_SanitizesDangerousHTML(t *testing.T) {
	r := newTestRenderer(t)

	input := "# Safe\n\n<script>alert('xss')</script>\n\n<p onclick=\"evil()\">hi</p>\n"
	got := r.Render(input)

	if strings.Contains(got.HTML, "<script") {
		t.Errorf("script tag survived sanitization:\n%s", got.HTML)
	}
	if strings.Contains(got.HTML, "onclick") {
		t.Errorf("event handler survived sanitization:\n%s", got.HTML)
	}
	if !strings.Contains(got.HTML, `id="safe"`) {
		t.Errorf("heading id missing after sanitization:\n%s", got.HTML)
	}
}

func TestRender_FencedCodeBlock(t *testing.T) {
	r := newTestRenderer(t)

	input := "# Code\n\n```go\nfunc main() {}\n```\n"
	got := r.Render(input)

	if !strings.Contains(got.HTML, "<pre") || !strings.Contains(got.HTML, "<code") {
		t.Errorf("fenced code block not rendered:\n%s", got.HTML)
	}
	// Highlighting wraps each token in a span, so match token text.
	if !strings.Contains(got.HTML, ">func<") || !strings.Contains(got.HTML, ">main<") {
		t.Errorf("code content missing:\n%s", got.HTML)
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := newTestRenderer(t)

	input := "# One\n\n# One\n\n## ???\n\nbody text\n\n```\ncode\n```\n"
	first := r.Render(input)
	second := r.Render(input)

	if first.HTML != second.HTML {
		t.Error("HTML differs between identical renders")
	}
	if len(first.Headings) != len(second.Headings) {
		t.Fatal("heading count differs between identical renders")
	}
	for i := range first.Headings {
		if first.Headings[i] != second.Headings[i] {
			t.Errorf("heading[%d] differs: %+v vs %+v", i, first.Headings[i], second.Headings[i])
		}
	}
}

func TestRender_MalformedMarkdownDegrades(t *testing.T) {
	r := newTestRenderer(t)

	// Unclosed emphasis, stray brackets, half a table - none of this may
	// panic or yield an empty result.
	got := r.Render("**unclosed [link(paren\n\n|a|b\n|-\n")
	if got.HTML == "" {
		t.Error("degraded render should still produce HTML")
	}
}
