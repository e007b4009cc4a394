package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CommentPage is one level of the reply tree. TotalCount is the video's
// live (non-deleted) comment count straight from the rows, independent of
// the page window.
type CommentPage struct {
	Comments   []*model.Comment
	TotalCount int64
	NextCursor string
}

// ListComments pages one level of a video's reply tree. Soft-deleted
// comments are returned with their placeholder content so the tree shape
// survives deletion.
func (s *InteractionService) ListComments(ctx context.Context, q bus.Query) (interface{}, error) {
	req, ok := q.(*ListCommentsQuery)
	if !ok {
		return nil, errno.ParamErr
	}

	video, err := db.GetVideoById(ctx, req.VideoId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}
	if err != nil {
		return nil, err
	}
	if video.IsDeleted {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}
	if !video.VisibleTo(req.CallerId) {
		return nil, errno.ForbiddenErr.WithMessage("video is not visible to this user")
	}

	pos := decodeCursor(req.Cursor)
	limit := clampLimit(req.Limit)
	comments, err := db.ListComments(ctx, req.VideoId, req.ParentId, pos, limit)
	if err != nil {
		return nil, err
	}
	total, err := db.GetVideoCommentCount(ctx, req.VideoId)
	if err != nil {
		return nil, err
	}

	return &CommentPage{
		Comments:   comments,
		TotalCount: total,
		NextCursor: nextCommentCursor(comments, limit, pos),
	}, nil
}
