package model

import (
	"strings"
	"time"

	"cliphive.com/pkg/constants"
	"cliphive.com/pkg/errno"
)

// Video is the upload aggregate. LikeCount/CommentCount/ViewCount are
// denormalized and must only move through the Apply*/IncreaseView
// operations so they cannot drift from the underlying rows inside a
// transaction. Version backs the optimistic check on counter updates.
type Video struct {
	VideoId      int64 `gorm:"primaryKey;autoIncrement:false"`
	UserId       int64 `gorm:"index"`
	Title        string
	Description  string
	Visibility   string
	VideoUrl     string
	CoverUrl     string
	ObjectKey    string
	LikeCount    int64
	CommentCount int64
	ViewCount    int64
	Version      int64
	IsDeleted    bool
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func NewVideo(videoId, userId int64, title, description, visibility, videoUrl, coverUrl, objectKey string) (*Video, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errno.ParamErr.WithMessage("video title cannot be empty")
	}
	switch visibility {
	case constants.VisibilityPublic, constants.VisibilityUnlisted, constants.VisibilityPrivate:
	default:
		return nil, errno.ParamErr.WithMessage("unknown visibility: " + visibility)
	}
	now := time.Now()
	return &Video{
		VideoId:     videoId,
		UserId:      userId,
		Title:       title,
		Description: strings.TrimSpace(description),
		Visibility:  visibility,
		VideoUrl:    videoUrl,
		CoverUrl:    coverUrl,
		ObjectKey:   objectKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ApplyCommentAdded is the only way CommentCount goes up. Call it in the
// same transaction as the comment insert.
func (v *Video) ApplyCommentAdded() {
	v.CommentCount++
	v.touch()
}

// ApplyCommentRemoved floors at zero; a drifted counter must never go negative.
func (v *Video) ApplyCommentRemoved() {
	if v.CommentCount > 0 {
		v.CommentCount--
	}
	v.touch()
}

func (v *Video) IncreaseView() {
	v.ViewCount++
	v.touch()
}

// SyncLikeCount aligns the denormalized like counter with the row count
// computed inside the same transaction as the like insert/delete.
func (v *Video) SyncLikeCount(count int64) {
	if count < 0 {
		count = 0
	}
	v.LikeCount = count
	v.touch()
}

// ApplyInfoUpdate validates and applies a metadata change; nil means
// "leave as is".
func (v *Video) ApplyInfoUpdate(title, description, visibility *string) error {
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return errno.ParamErr.WithMessage("video title cannot be empty")
		}
		v.Title = t
	}
	if description != nil {
		v.Description = strings.TrimSpace(*description)
	}
	if visibility != nil {
		switch *visibility {
		case constants.VisibilityPublic, constants.VisibilityUnlisted, constants.VisibilityPrivate:
			v.Visibility = *visibility
		default:
			return errno.ParamErr.WithMessage("unknown visibility: " + *visibility)
		}
	}
	v.touch()
	return nil
}

func (v *Video) SoftDelete() {
	v.IsDeleted = true
	v.touch()
}

func (v *Video) OwnedBy(userId int64) bool {
	return v.UserId == userId
}

// VisibleTo implements the read rule: public is open, unlisted is readable
// by anyone holding the id, private is owner-only. callerId 0 means an
// anonymous caller.
func (v *Video) VisibleTo(callerId int64) bool {
	if v.IsDeleted {
		return false
	}
	switch v.Visibility {
	case constants.VisibilityPublic, constants.VisibilityUnlisted:
		return true
	default:
		return v.OwnedBy(callerId)
	}
}

func (v *Video) touch() {
	v.UpdatedAt = time.Now()
}
