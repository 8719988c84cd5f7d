package models

import (
	"testing"

	"github.com/google/uuid"
)

// TestUserHasProfile verifies profile detection on users loaded with and
// without the profile relation.
func TestUserHasProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		want    bool
	}{
		{name: "no profile", profile: nil, want: false},
		{name: "empty profile", profile: &Profile{}, want: true},
		{name: "full profile", profile: &Profile{Bio: "hi", AvatarURL: "http://x/a.png"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Profile: tt.profile}
			if got := u.HasProfile(); got != tt.want {
				t.Errorf("HasProfile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryHasPosts(t *testing.T) {
	c := &Category{}
	if c.HasPosts() {
		t.Error("expected no posts for a fresh category")
	}

	c.Posts = []Post{{ID: uuid.New()}}
	if !c.HasPosts() {
		t.Error("expected HasPosts after linking a post")
	}
}

func TestCategoryPostIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	c := &Category{Posts: []Post{{ID: a}, {ID: b}}}

	ids := c.PostIDs()
	if len(ids) != 2 {
		t.Fatalf("len: got %d, want 2", len(ids))
	}
	if ids[0] != a || ids[1] != b {
		t.Errorf("ids out of order: got %v", ids)
	}

	empty := (&Category{}).PostIDs()
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}
