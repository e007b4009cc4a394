package db

import (
	"context"

	"cliphive.com/cmd/model"
	"github.com/pkg/errors"
)

// CreateVideoLike inserts the (video, user) row. A duplicate-key failure
// comes back unwrapped so the handler can recognize it with IsDuplicateKey
// and answer "already liked" instead of a generic error.
func CreateVideoLike(ctx context.Context, like *model.VideoLike) error {
	return Exec(ctx).Create(like).Error
}

// DeleteVideoLike removes the row and reports whether it existed.
func DeleteVideoLike(ctx context.Context, videoId, userId int64) (bool, error) {
	res := Exec(ctx).Where("video_id = ? AND user_id = ?", videoId, userId).
		Delete(&model.VideoLike{})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "DeleteVideoLike failed, video_id=%d user_id=%d", videoId, userId)
	}
	return res.RowsAffected > 0, nil
}

func HasVideoLike(ctx context.Context, videoId, userId int64) (bool, error) {
	var count int64
	err := Exec(ctx).Model(&model.VideoLike{}).
		Where("video_id = ? AND user_id = ?", videoId, userId).Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "HasVideoLike failed, video_id=%d user_id=%d", videoId, userId)
	}
	return count > 0, nil
}

func GetVideoLikeCount(ctx context.Context, videoId int64) (int64, error) {
	var count int64
	err := Exec(ctx).Model(&model.VideoLike{}).
		Where("video_id = ?", videoId).Count(&count).Error
	if err != nil {
		return 0, errors.Wrapf(err, "GetVideoLikeCount failed, video_id=%d", videoId)
	}
	return count, nil
}
