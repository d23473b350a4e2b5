// Package access holds the pure gating decision for book visibility.
//
// The gate has no I/O and no side effects: callers load the viewer flags and
// the book's state, call Decide or DecideDetail, and map the outcome to a
// transport response themselves. Decision logging belongs to the caller.
package access

// Viewer carries the account flags relevant to gating.
type Viewer struct {
	Authenticated bool
	Blocked       bool
	Staff         bool
	Superuser     bool
}

// Admin reports whether the viewer bypasses book-level gating.
// Both flags are required - staff alone is insufficient.
func (v Viewer) Admin() bool {
	return v.Staff && v.Superuser
}

// BookState carries the per-book facts the decision depends on.
type BookState struct {
	Exists    bool
	Published bool
	Granted   bool // viewer holds an access record for this book
}

// Outcome classifies a gating decision.
type Outcome int

const (
	// NotFound hides the book entirely. Unpublished books are deliberately
	// indistinguishable from nonexistent ones for regular users.
	NotFound Outcome = iota

	// Forbidden denies access while acknowledging the book exists.
	Forbidden

	// FullAccess exposes every chapter and the raw content reference.
	FullAccess

	// PreviewOnly exposes metadata and preview-flagged chapters only.
	// Used by the detail view; the read/content endpoints never return it.
	PreviewOnly
)

// String implements fmt.Stringer for log fields.
func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case FullAccess:
		return "full_access"
	case PreviewOnly:
		return "preview_only"
	default:
		return "unknown"
	}
}

// Decision is the result of gating a (viewer, book) pair.
type Decision struct {
	Outcome Outcome
}

// Allowed reports whether any content may be returned.
func (d Decision) Allowed() bool {
	return d.Outcome == FullAccess || d.Outcome == PreviewOnly
}

// Locked reports whether the payload must be restricted to the preview
// subset (chapters filtered, content file withheld).
func (d Decision) Locked() bool {
	return d.Outcome == PreviewOnly
}

// ChapterVisible reports whether a chapter with the given preview flag is
// included in the response payload.
func (d Decision) ChapterVisible(isPreview bool) bool {
	switch d.Outcome {
	case FullAccess:
		return true
	case PreviewOnly:
		return isPreview
	default:
		return false
	}
}

// Decide classifies the viewer against the book for the strict read and
// content endpoints: the viewer either gets everything or a hard deny.
//
// Order matters and first match wins:
//
//  1. Unauthenticated viewers are denied outright.
//  2. A blocked account is denied regardless of admin flags. The account
//     block is absolute; admin status does not bypass it.
//  3. A missing book is NotFound for everyone, admins included.
//  4. Admins get full access to anything that exists.
//  5. Unpublished books are NotFound, not Forbidden - regular users must
//     not be able to probe for their existence.
//  6. Without a grant the book stays locked.
func Decide(v Viewer, b BookState) Decision {
	d := decide(v, b)
	if d.Outcome == PreviewOnly {
		d.Outcome = Forbidden
	}
	return d
}

// DecideDetail classifies the viewer for the book-detail view, where a
// published-but-ungranted book yields a preview payload instead of a deny.
func DecideDetail(v Viewer, b BookState) Decision {
	return decide(v, b)
}

func decide(v Viewer, b BookState) Decision {
	if !v.Authenticated {
		return Decision{Outcome: Forbidden}
	}
	if v.Blocked {
		return Decision{Outcome: Forbidden}
	}
	if !b.Exists {
		return Decision{Outcome: NotFound}
	}
	if v.Admin() {
		return Decision{Outcome: FullAccess}
	}
	if !b.Published {
		return Decision{Outcome: NotFound}
	}
	if !b.Granted {
		return Decision{Outcome: PreviewOnly}
	}
	return Decision{Outcome: FullAccess}
}
