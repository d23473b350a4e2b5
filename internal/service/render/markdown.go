// Package render converts book markdown into sanitized HTML with anchored
// headings. The renderer is a pure function of (text, config): no globals,
// no I/O, and deterministic output including id assignment.
package render

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"folio/internal/domain/models"
	"folio/internal/domain/services"
)

// Config controls how markdown is rendered. The zero value is unusable;
// construct with DefaultConfig and override as needed.
type Config struct {
	// MaxHeadingLevel is the deepest heading level that receives an anchor
	// id and a TOC entry. Deeper headings render normally but stay
	// anonymous.
	MaxHeadingLevel int

	// HighlightStyle is the chroma style name for fenced code blocks.
	HighlightStyle string
}

// DefaultConfig returns the production renderer settings: headings h1-h4,
// GitHub-flavored code highlighting via CSS classes.
func DefaultConfig() Config {
	return Config{
		MaxHeadingLevel: 4,
		HighlightStyle:  "github",
	}
}

// Renderer implements services.MarkdownRenderer. Safe for concurrent use:
// the goldmark instance and the sanitizer policy are both read-only after
// construction.
type Renderer struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	maxLevel int
}

// New builds a renderer from the given config.
func New(cfg Config) *Renderer {
	if cfg.MaxHeadingLevel < 1 || cfg.MaxHeadingLevel > 6 {
		cfg.MaxHeadingLevel = DefaultConfig().MaxHeadingLevel
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.HighlightStyle),
				// Classes instead of inline styles so the sanitizer can keep
				// the markup without allowing style attributes through.
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("code", "pre", "span", "div")

	return &Renderer{
		md:       md,
		policy:   policy,
		maxLevel: cfg.MaxHeadingLevel,
	}
}

var _ services.MarkdownRenderer = (*Renderer)(nil)

// Render converts markdown to sanitized HTML and collects the auto-TOC.
//
// Empty or whitespace-only input short-circuits to an empty result. A
// heading whose visible text is empty after trimming contributes nothing
// and receives no id. Id collisions resolve deterministically: the first
// repeat of base id X becomes X-1, the next X-2, and so on; headings whose
// text slugifies to nothing fall back to heading-<n> where n counts the
// headings accepted so far.
func (r *Renderer) Render(markdown string) *models.RenderedContent {
	if strings.TrimSpace(markdown) == "" {
		return &models.RenderedContent{HTML: "", Headings: []models.Heading{}}
	}

	var buf bytes.Buffer
	// goldmark is permissive: malformed markdown still produces best-effort
	// HTML. Convert only errors on writer failure, which bytes.Buffer
	// cannot produce, so the buffer contents are used either way.
	_ = r.md.Convert([]byte(markdown), &buf)

	sanitized := r.policy.Sanitize(buf.String())

	nodes, err := parseFragment(sanitized)
	if err != nil {
		// Unparseable output degrades to the sanitized HTML without anchors.
		return &models.RenderedContent{HTML: sanitized, Headings: []models.Heading{}}
	}

	headings := r.anchorHeadings(nodes)

	var out bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&out, n); err != nil {
			return &models.RenderedContent{HTML: sanitized, Headings: headings}
		}
	}

	return &models.RenderedContent{HTML: out.String(), Headings: headings}
}

// anchorHeadings walks the fragment in document order, assigns a unique id
// to each accepted heading and returns the headings in order.
func (r *Renderer) anchorHeadings(nodes []*html.Node) []models.Heading {
	headings := []models.Heading{}
	used := map[string]bool{}
	counters := map[string]int{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 && level <= r.maxLevel {
				title := strings.TrimSpace(textContent(n))
				if title == "" {
					return // no TOC entry, no id
				}

				base := slug.Make(title)
				if base == "" {
					// Symbol-only heading: positional fallback, 0-indexed
					// over accepted headings.
					base = fmt.Sprintf("heading-%d", len(headings))
				}

				id := base
				if used[id] {
					counters[base]++
					id = fmt.Sprintf("%s-%d", base, counters[base])
				}
				used[id] = true

				setID(n, id)
				headings = append(headings, models.Heading{
					ID:    id,
					Title: title,
					Level: level,
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range nodes {
		walk(n)
	}
	return headings
}

// parseFragment parses sanitized HTML as body content, preserving fragment
// semantics (no implied html/head/body wrapper on re-render).
func parseFragment(s string) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	return html.ParseFragment(strings.NewReader(s), ctx)
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// textContent returns the concatenated text of a node's subtree, skipping
// structural markup.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// setID sets the id attribute on an element, replacing any existing one.
func setID(n *html.Node, id string) {
	for i := range n.Attr {
		if n.Attr[i].Key == "id" {
			n.Attr[i].Val = id
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
}
