package db

import (
	"context"

	"cliphive.com/cmd/model"
	"cliphive.com/pkg/constants"
	"cliphive.com/pkg/cursor"
	"github.com/pkg/errors"
)

func CreateVideo(ctx context.Context, video *model.Video) error {
	if err := Exec(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "CreateVideo failed, video_id=%d", video.VideoId)
	}
	return nil
}

// GetVideoById loads a video row including soft-deleted ones; callers
// decide what a deleted row means for them. Absence surfaces as
// gorm.ErrRecordNotFound.
func GetVideoById(ctx context.Context, videoId int64) (*model.Video, error) {
	video := &model.Video{}
	if err := Exec(ctx).Where("video_id = ?", videoId).First(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// UpdateVideoInfo persists the mutable metadata fields.
func UpdateVideoInfo(ctx context.Context, video *model.Video) error {
	err := Exec(ctx).Model(&model.Video{}).Where("video_id = ?", video.VideoId).
		Updates(map[string]interface{}{
			"title":       video.Title,
			"description": video.Description,
			"visibility":  video.Visibility,
			"updated_at":  video.UpdatedAt,
		}).Error
	if err != nil {
		return errors.Wrapf(err, "UpdateVideoInfo failed, video_id=%d", video.VideoId)
	}
	return nil
}

// UpdateVideoCounters writes the denormalized counters with an optimistic
// version check. Zero rows affected means another transaction got there
// first; the caller's whole command is rolled back and retried.
func UpdateVideoCounters(ctx context.Context, video *model.Video) error {
	res := Exec(ctx).Model(&model.Video{}).
		Where("video_id = ? AND version = ?", video.VideoId, video.Version).
		Updates(map[string]interface{}{
			"like_count":    video.LikeCount,
			"comment_count": video.CommentCount,
			"view_count":    video.ViewCount,
			"version":       video.Version + 1,
			"updated_at":    video.UpdatedAt,
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "UpdateVideoCounters failed, video_id=%d", video.VideoId)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrVersionConflict, "video_id=%d version=%d", video.VideoId, video.Version)
	}
	video.Version++
	return nil
}

func SoftDeleteVideo(ctx context.Context, video *model.Video) error {
	err := Exec(ctx).Model(&model.Video{}).Where("video_id = ?", video.VideoId).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": video.UpdatedAt,
		}).Error
	if err != nil {
		return errors.Wrapf(err, "SoftDeleteVideo failed, video_id=%d", video.VideoId)
	}
	return nil
}

// ListFeed pages the public feed newest-first with a keyset boundary so a
// page edge stays stable under concurrent inserts.
func ListFeed(ctx context.Context, pos *cursor.Position, limit int) ([]*model.Video, error) {
	if limit <= 0 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	q := Exec(ctx).Model(&model.Video{}).
		Where("visibility = ? AND is_deleted = ?", constants.VisibilityPublic, false)
	if pos != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND video_id < ?)",
			pos.CreatedAt, pos.CreatedAt, pos.Id)
	}
	var videos []*model.Video
	if err := q.Order("created_at DESC, video_id DESC").Limit(limit).Find(&videos).Error; err != nil {
		return nil, errors.Wrapf(err, "ListFeed failed")
	}
	return videos, nil
}

// ListUserVideos pages one uploader's videos; private and unlisted rows
// are only included when the owner asks for their own list.
func ListUserVideos(ctx context.Context, userId int64, ownView bool, pos *cursor.Position, limit int) ([]*model.Video, error) {
	if limit <= 0 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	q := Exec(ctx).Model(&model.Video{}).
		Where("user_id = ? AND is_deleted = ?", userId, false)
	if !ownView {
		q = q.Where("visibility = ?", constants.VisibilityPublic)
	}
	if pos != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND video_id < ?)",
			pos.CreatedAt, pos.CreatedAt, pos.Id)
	}
	var videos []*model.Video
	if err := q.Order("created_at DESC, video_id DESC").Limit(limit).Find(&videos).Error; err != nil {
		return nil, errors.Wrapf(err, "ListUserVideos failed, user_id=%d", userId)
	}
	return videos, nil
}
