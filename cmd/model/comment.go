package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"cliphive.com/pkg/constants"
	"cliphive.com/pkg/errno"
)

// Comment is a node in a per-video reply tree. Parent/child links are
// plain id references (ParentId 0 = top-level comment), so soft-deleting
// a parent never cascades: replies keep their rows and their ParentId.
type Comment struct {
	CommentId int64 `gorm:"primaryKey;autoIncrement:false"`
	VideoId   int64 `gorm:"index"`
	UserId    int64
	ParentId  int64 `gorm:"index"`
	Content   string
	IsDeleted bool
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// NewComment validates and normalizes content: trimmed, never empty,
// truncated to the rune limit rather than rejected.
func NewComment(commentId, videoId, userId, parentId int64, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.ParamErr.WithMessage("comment content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxCommentLength {
		content = string([]rune(content)[:constants.MaxCommentLength])
	}
	now := time.Now()
	return &Comment{
		CommentId: commentId,
		VideoId:   videoId,
		UserId:    userId,
		ParentId:  parentId,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Comment) IsReply() bool {
	return c.ParentId != 0
}

// CanParent reports whether c may carry replies for the given video:
// it must exist as a live comment on the same video. Cross-video replies
// are rejected.
func (c *Comment) CanParent(videoId int64) bool {
	return !c.IsDeleted && c.VideoId == videoId
}

// SoftDelete irreversibly replaces the content with the placeholder and
// marks the row deleted. Idempotent at the field level; the handler is
// expected to check IsDeleted before dispatching the delete.
func (c *Comment) SoftDelete() {
	c.Content = constants.DeletedCommentPlaceholder
	c.IsDeleted = true
	c.UpdatedAt = time.Now()
}
