package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SoftDeleteComment replaces the content with the placeholder, keeps the
// row and every reply, and decrements the video's CommentCount in the same
// transaction. The IsDeleted guard lives here, not in the domain op, so a
// repeated delete never decrements the counter twice.
func (s *InteractionService) SoftDeleteComment(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*SoftDeleteCommentCommand)
	if !ok {
		return nil, errno.ParamErr
	}

	comment, err := db.GetCommentById(ctx, req.CommentId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("comment does not exist")
	}
	if err != nil {
		return nil, err
	}
	if comment.IsDeleted {
		// Already placeholder content; nothing left to do.
		return comment, nil
	}

	video, err := db.GetVideoById(ctx, comment.VideoId)
	if err != nil {
		return nil, err
	}
	if comment.UserId != req.UserId && !video.OwnedBy(req.UserId) {
		return nil, errno.ForbiddenErr.WithMessage("only the author or the video owner may delete a comment")
	}

	comment.SoftDelete()
	if err := db.SaveCommentState(ctx, comment); err != nil {
		return nil, err
	}

	video.ApplyCommentRemoved()
	if err := db.UpdateVideoCounters(ctx, video); err != nil {
		return nil, err
	}

	hlog.CtxInfof(ctx, "comment soft-deleted, comment_id=%d video_id=%d", comment.CommentId, comment.VideoId)
	return comment, nil
}
