package db

import (
	"context"

	"cliphive.com/cmd/model"
	"cliphive.com/pkg/constants"
	"cliphive.com/pkg/cursor"
	"github.com/pkg/errors"
)

func CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := Exec(ctx).Create(comment).Error; err != nil {
		return errors.Wrapf(err, "CreateComment failed, comment_id=%d", comment.CommentId)
	}
	return nil
}

func GetCommentById(ctx context.Context, commentId int64) (*model.Comment, error) {
	comment := &model.Comment{}
	if err := Exec(ctx).Where("comment_id = ?", commentId).First(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// SaveCommentState persists the fields a soft-delete touches. The row is
// never physically removed so the reply tree stays intact.
func SaveCommentState(ctx context.Context, comment *model.Comment) error {
	err := Exec(ctx).Model(&model.Comment{}).Where("comment_id = ?", comment.CommentId).
		Updates(map[string]interface{}{
			"content":    comment.Content,
			"is_deleted": comment.IsDeleted,
			"updated_at": comment.UpdatedAt,
		}).Error
	if err != nil {
		return errors.Wrapf(err, "SaveCommentState failed, comment_id=%d", comment.CommentId)
	}
	return nil
}

// ListComments pages one level of the reply tree: parentId 0 lists the
// top-level comments of a video, a non-zero parentId lists direct replies.
// Soft-deleted rows are included; their content is already the placeholder.
func ListComments(ctx context.Context, videoId, parentId int64, pos *cursor.Position, limit int) ([]*model.Comment, error) {
	if limit <= 0 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	q := Exec(ctx).Model(&model.Comment{}).
		Where("video_id = ? AND parent_id = ?", videoId, parentId)
	if pos != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND comment_id < ?)",
			pos.CreatedAt, pos.CreatedAt, pos.Id)
	}
	var comments []*model.Comment
	if err := q.Order("created_at DESC, comment_id DESC").Limit(limit).Find(&comments).Error; err != nil {
		return nil, errors.Wrapf(err, "ListComments failed, video_id=%d", videoId)
	}
	return comments, nil
}

func GetVideoCommentCount(ctx context.Context, videoId int64) (int64, error) {
	var count int64
	if err := Exec(ctx).Model(&model.Comment{}).
		Where("video_id = ? AND is_deleted = ?", videoId, false).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "GetVideoCommentCount failed, video_id=%d", videoId)
	}
	return count, nil
}
