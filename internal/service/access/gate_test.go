package access

import "testing"

func TestDecide(t *testing.T) {
	user := Viewer{Authenticated: true}
	admin := Viewer{Authenticated: true, Staff: true, Superuser: true}

	published := BookState{Exists: true, Published: true}
	granted := BookState{Exists: true, Published: true, Granted: true}
	unpublished := BookState{Exists: true}
	missing := BookState{}

	tests := []struct {
		name   string
		viewer Viewer
		book   BookState
		want   Outcome
	}{
		{
			name:   "unauthenticated viewer denied",
			viewer: Viewer{},
			book:   granted,
			want:   Forbidden,
		},
		{
			name:   "blocked user denied",
			viewer: Viewer{Authenticated: true, Blocked: true},
			book:   granted,
			want:   Forbidden,
		},
		{
			name:   "blocked admin denied - block is absolute",
			viewer: Viewer{Authenticated: true, Blocked: true, Staff: true, Superuser: true},
			book:   granted,
			want:   Forbidden,
		},
		{
			name:   "block checked before book existence",
			viewer: Viewer{Authenticated: true, Blocked: true},
			book:   missing,
			want:   Forbidden,
		},
		{
			name:   "missing book not found even for admin",
			viewer: admin,
			book:   missing,
			want:   NotFound,
		},
		{
			name:   "admin bypasses publication state",
			viewer: admin,
			book:   unpublished,
			want:   FullAccess,
		},
		{
			name:   "admin bypasses grant check",
			viewer: admin,
			book:   published,
			want:   FullAccess,
		},
		{
			name:   "staff alone is not admin",
			viewer: Viewer{Authenticated: true, Staff: true},
			book:   unpublished,
			want:   NotFound,
		},
		{
			name:   "superuser alone is not admin",
			viewer: Viewer{Authenticated: true, Superuser: true},
			book:   published,
			want:   Forbidden,
		},
		{
			name:   "unpublished book hidden from regular user",
			viewer: user,
			book:   unpublished,
			want:   NotFound,
		},
		{
			name:   "unpublished hidden even with grant",
			viewer: user,
			book:   BookState{Exists: true, Granted: true},
			want:   NotFound,
		},
		{
			name:   "published without grant is forbidden on read",
			viewer: user,
			book:   published,
			want:   Forbidden,
		},
		{
			name:   "published with grant is full access",
			viewer: user,
			book:   granted,
			want:   FullAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.viewer, tt.book)
			if got.Outcome != tt.want {
				t.Errorf("Decide() outcome = %v, want %v", got.Outcome, tt.want)
			}
		})
	}
}

func TestDecideDetail_PreviewInsteadOfDeny(t *testing.T) {
	user := Viewer{Authenticated: true}
	published := BookState{Exists: true, Published: true}

	got := DecideDetail(user, published)
	if got.Outcome != PreviewOnly {
		t.Fatalf("DecideDetail() outcome = %v, want %v", got.Outcome, PreviewOnly)
	}
	if !got.Locked() {
		t.Error("preview decision should report locked")
	}
	if !got.Allowed() {
		t.Error("preview decision should still allow a response")
	}

	// Same pair on the strict path is a hard deny.
	if strict := Decide(user, published); strict.Outcome != Forbidden {
		t.Errorf("Decide() outcome = %v, want %v", strict.Outcome, Forbidden)
	}
}

func TestDecisionChapterVisible(t *testing.T) {
	tests := []struct {
		name        string
		outcome     Outcome
		isPreview   bool
		wantVisible bool
	}{
		{"full access shows regular chapter", FullAccess, false, true},
		{"full access shows preview chapter", FullAccess, true, true},
		{"preview only hides regular chapter", PreviewOnly, false, false},
		{"preview only shows preview chapter", PreviewOnly, true, true},
		{"forbidden hides everything", Forbidden, true, false},
		{"not found hides everything", NotFound, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decision{Outcome: tt.outcome}
			if got := d.ChapterVisible(tt.isPreview); got != tt.wantVisible {
				t.Errorf("ChapterVisible(%v) = %v, want %v", tt.isPreview, got, tt.wantVisible)
			}
		})
	}
}

func TestViewerAdmin(t *testing.T) {
	tests := []struct {
		name   string
		viewer Viewer
		want   bool
	}{
		{"staff and superuser", Viewer{Staff: true, Superuser: true}, true},
		{"staff only", Viewer{Staff: true}, false},
		{"superuser only", Viewer{Superuser: true}, false},
		{"neither", Viewer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.viewer.Admin(); got != tt.want {
				t.Errorf("Admin() = %v, want %v", got, tt.want)
			}
		})
	}
}
