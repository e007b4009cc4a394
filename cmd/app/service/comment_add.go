package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"cliphive.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type InteractionService struct {
	bus *bus.Bus
}

func NewInteractionService(b *bus.Bus) *InteractionService {
	return &InteractionService{bus: b}
}

// AddComment inserts the comment and bumps the parent video's
// CommentCount in the same transaction. The counter write carries the
// optimistic version check, so two concurrent commenters cannot both
// apply +1 over the same snapshot: the loser rolls back and the
// execution strategy re-runs it on fresh state.
func (s *InteractionService) AddComment(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*AddCommentCommand)
	if !ok {
		return nil, errno.ParamErr
	}

	// Content validation happens before any persistence call.
	comment, err := model.NewComment(utils.NextId(), req.VideoId, req.UserId, req.ParentId, req.Content)
	if err != nil {
		return nil, err
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
	if !video.VisibleTo(req.UserId) {
		return nil, errno.ForbiddenErr.WithMessage("video is not open for comments from this user")
	}

	if req.ParentId != 0 {
		parent, err := db.GetCommentById(ctx, req.ParentId)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("parent comment does not exist")
		}
		if err != nil {
			return nil, err
		}
		if !parent.CanParent(req.VideoId) {
			return nil, errno.ParamErr.WithMessage("reply parent must be a live comment on the same video")
		}
	}

	if err := db.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	video.ApplyCommentAdded()
	if err := db.UpdateVideoCounters(ctx, video); err != nil {
		return nil, err
	}

	hlog.CtxInfof(ctx, "comment added, comment_id=%d video_id=%d", comment.CommentId, comment.VideoId)
	return comment, nil
}
