package model

import (
	"testing"

	"cliphive.com/pkg/constants"
)

func TestCounterOperations(t *testing.T) {
	t.Run("AddThenRemove", func(t *testing.T) {
		v := &Video{CommentCount: 3}
		for i := 0; i < 5; i++ {
			v.ApplyCommentAdded()
		}
		for i := 0; i < 2; i++ {
			v.ApplyCommentRemoved()
		}
		if v.CommentCount != 6 {
			t.Errorf("CommentCount = %d, want 6", v.CommentCount)
		}
	})

	t.Run("NeverNegative", func(t *testing.T) {
		v := &Video{}
		for i := 0; i < 4; i++ {
			v.ApplyCommentRemoved()
		}
		if v.CommentCount != 0 {
			t.Errorf("CommentCount = %d, want 0", v.CommentCount)
		}
	})

	t.Run("Interleaved", func(t *testing.T) {
		// Every interleaving of N adds and M removes (M <= N) from C must
		// land on C+N-M as long as the count never dips below zero mid-way.
		v := &Video{CommentCount: 1}
		ops := []bool{true, false, true, true, false, true, false}
		for _, add := range ops {
			if add {
				v.ApplyCommentAdded()
			} else {
				v.ApplyCommentRemoved()
			}
		}
		if v.CommentCount != 2 {
			t.Errorf("CommentCount = %d, want 2", v.CommentCount)
		}
	})

	t.Run("IncreaseView", func(t *testing.T) {
		v := &Video{}
		v.IncreaseView()
		v.IncreaseView()
		if v.ViewCount != 2 {
			t.Errorf("ViewCount = %d, want 2", v.ViewCount)
		}
	})
}

func TestNewVideoValidation(t *testing.T) {
	if _, err := NewVideo(1, 10, "  ", "", constants.VisibilityPublic, "", "", ""); err == nil {
		t.Error("empty title must be rejected")
	}
	if _, err := NewVideo(1, 10, "ok", "", "friends-only", "", "", ""); err == nil {
		t.Error("unknown visibility must be rejected")
	}
	v, err := NewVideo(1, 10, " demo ", " desc ", constants.VisibilityUnlisted, "u", "c", "k")
	if err != nil {
		t.Fatal(err)
	}
	if v.Title != "demo" || v.Description != "desc" {
		t.Errorf("fields not trimmed: %q / %q", v.Title, v.Description)
	}
	if v.LikeCount != 0 || v.CommentCount != 0 || v.ViewCount != 0 {
		t.Error("counters must start at zero")
	}
}

func TestVisibility(t *testing.T) {
	owner, stranger := int64(10), int64(99)
	cases := []struct {
		visibility string
		caller     int64
		want       bool
	}{
		{constants.VisibilityPublic, stranger, true},
		{constants.VisibilityPublic, 0, true},
		{constants.VisibilityUnlisted, stranger, true},
		{constants.VisibilityPrivate, stranger, false},
		{constants.VisibilityPrivate, owner, true},
		{constants.VisibilityPrivate, 0, false},
	}
	for _, c := range cases {
		v := &Video{UserId: owner, Visibility: c.visibility}
		if got := v.VisibleTo(c.caller); got != c.want {
			t.Errorf("VisibleTo(%d) on %s video = %v, want %v", c.caller, c.visibility, got, c.want)
		}
	}

	t.Run("DeletedNeverVisible", func(t *testing.T) {
		v := &Video{UserId: owner, Visibility: constants.VisibilityPublic, IsDeleted: true}
		if v.VisibleTo(owner) {
			t.Error("soft-deleted video must not be visible, even to its owner")
		}
	})
}
