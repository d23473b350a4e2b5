// Package toc builds the numbered table-of-contents tree from manually
// authored entries, and adapts a render's flat heading list into the shared
// payload shape.
//
// Selection between the two sources is the caller's concern: manual entries
// always win entirely, and the auto-generated list is never numbered.
package toc

import (
	"fmt"
	"sort"

	"folio/internal/domain/models"
	"folio/internal/domain/services"
)

// Builder implements services.TOCBuilder. Stateless and safe for
// concurrent use.
type Builder struct{}

// NewBuilder creates a TOC tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

var _ services.TOCBuilder = (*Builder)(nil)

// BuildManualTree converts a book's flat entry set into a numbered tree.
//
// The entries are indexed into an arena (a slice plus child-index lists) so
// the tree is built by index, never by mutable pointer links. Cyclic parent
// chains are a precondition violation; because the traversal starts at
// roots and only ever descends the child index, cycle members are simply
// unreachable and the build still terminates. Entries referencing a parent
// that is not in the set are dropped the same way.
func (b *Builder) BuildManualTree(entries []models.TOCEntry) []*models.TOCNode {
	if len(entries) == 0 {
		return []*models.TOCNode{}
	}

	// Arena indices, never entry pointers.
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}

	children := make(map[int][]int, len(entries))
	var roots []int
	for i, e := range entries {
		if e.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		parent, ok := byID[*e.ParentID]
		if !ok {
			continue // dangling parent reference: unreachable, dropped
		}
		children[parent] = append(children[parent], i)
	}

	var build func(indices []int, parentNumber string) []*models.TOCNode
	build = func(indices []int, parentNumber string) []*models.TOCNode {
		sortSiblings(entries, indices)

		nodes := make([]*models.TOCNode, 0, len(indices))
		for pos, idx := range indices {
			e := entries[idx]

			number := fmt.Sprintf("%d", pos+1)
			if parentNumber != "" {
				number = parentNumber + "." + number
			}

			node := &models.TOCNode{
				ID:     displayID(e),
				Title:  e.Title,
				Level:  e.Level,
				Number: number,
			}
			if kids := children[idx]; len(kids) > 0 {
				node.Children = build(kids, number)
			}
			nodes = append(nodes, node)
		}
		return nodes
	}

	return build(roots, "")
}

// FromHeadings adapts a render's flat heading list into TOC payload nodes.
// No numbering is applied to auto-generated TOCs.
func FromHeadings(headings []models.Heading) []*models.TOCNode {
	nodes := make([]*models.TOCNode, 0, len(headings))
	for _, h := range headings {
		nodes = append(nodes, &models.TOCNode{
			ID:    h.ID,
			Title: h.Title,
			Level: h.Level,
		})
	}
	return nodes
}

// sortSiblings orders sibling indices by entry order, ascending. Order is
// expected to be unique within a sibling set; id breaks ties for stability
// when it is not.
func sortSiblings(entries []models.TOCEntry, indices []int) {
	sort.SliceStable(indices, func(a, b int) bool {
		ea, eb := entries[indices[a]], entries[indices[b]]
		if ea.Order != eb.Order {
			return ea.Order < eb.Order
		}
		return ea.ID < eb.ID
	})
}

// displayID returns the anchor id when set and non-empty, else a synthetic
// id derived from the entry's identity.
func displayID(e models.TOCEntry) string {
	if e.AnchorID != nil && *e.AnchorID != "" {
		return *e.AnchorID
	}
	return "toc-entry-" + e.ID
}
