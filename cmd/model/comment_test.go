package model

import (
	"strings"
	"testing"
	"unicode/utf8"

	"cliphive.com/pkg/constants"
)

func TestNewCommentValidation(t *testing.T) {
	t.Run("RejectsEmpty", func(t *testing.T) {
		for _, content := range []string{"", "   ", "\n\t "} {
			if _, err := NewComment(1, 2, 3, 0, content); err == nil {
				t.Errorf("content %q must be rejected", content)
			}
		}
	})

	t.Run("TrimsAndTruncates", func(t *testing.T) {
		c, err := NewComment(1, 2, 3, 0, "  hello  ")
		if err != nil {
			t.Fatal(err)
		}
		if c.Content != "hello" {
			t.Errorf("Content = %q, want trimmed", c.Content)
		}

		long := strings.Repeat("道", constants.MaxCommentLength+50)
		c, err = NewComment(1, 2, 3, 0, long)
		if err != nil {
			t.Fatal(err)
		}
		if n := utf8.RuneCountInString(c.Content); n != constants.MaxCommentLength {
			t.Errorf("truncated length = %d runes, want %d", n, constants.MaxCommentLength)
		}
	})
}

func TestCanParent(t *testing.T) {
	parent := &Comment{CommentId: 1, VideoId: 7}
	if !parent.CanParent(7) {
		t.Error("live same-video parent must be accepted")
	}
	if parent.CanParent(8) {
		t.Error("cross-video reply must be rejected")
	}
	parent.SoftDelete()
	if parent.CanParent(7) {
		t.Error("deleted comment must not accept replies")
	}
}

func TestSoftDeleteKeepsReplyTree(t *testing.T) {
	parent, _ := NewComment(1, 7, 3, 0, "original text")
	reply, _ := NewComment(2, 7, 4, parent.CommentId, "a reply")

	parent.SoftDelete()

	if parent.Content != constants.DeletedCommentPlaceholder {
		t.Errorf("Content = %q, want placeholder", parent.Content)
	}
	if !parent.IsDeleted {
		t.Error("IsDeleted must be true")
	}
	if reply.IsDeleted || reply.Content != "a reply" || reply.ParentId != parent.CommentId {
		t.Error("reply must be untouched by parent soft-delete")
	}

	t.Run("SecondDeleteIsFieldLevelNoop", func(t *testing.T) {
		parent.SoftDelete()
		if parent.Content != constants.DeletedCommentPlaceholder || !parent.IsDeleted {
			t.Error("second soft-delete must leave the fields as they were")
		}
	})
}
