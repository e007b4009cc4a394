package service

import (
	"context"
	"time"

	"cliphive.com/cmd/app/dal/db"
	redisCache "cliphive.com/cmd/app/infras/redis"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LikeVideo inserts the (video, user) row; the composite primary key is
// the uniqueness guard. A duplicate insert is not a failure of the
// infrastructure, it is the caller telling us something we already know,
// so it maps to Conflict instead of a generic error and never retries.
func (s *InteractionService) LikeVideo(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*LikeVideoCommand)
	if !ok {
		return nil, errno.ParamErr
	}

	video, err := s.loadLikeTarget(ctx, req.VideoId, req.UserId)
	if err != nil {
		return nil, err
	}

	like := &model.VideoLike{VideoId: req.VideoId, UserId: req.UserId, CreatedAt: time.Now()}
	if err := db.CreateVideoLike(ctx, like); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, errno.ConflictErr.WithMessage("already liked")
		}
		return nil, errors.Wrapf(err, "CreateVideoLike failed, video_id=%d user_id=%d", req.VideoId, req.UserId)
	}

	if err := s.syncLikeCount(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// UnlikeVideo removes the row; unliking something never liked is NotFound.
func (s *InteractionService) UnlikeVideo(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*UnlikeVideoCommand)
	if !ok {
		return nil, errno.ParamErr
	}

	video, err := s.loadLikeTarget(ctx, req.VideoId, req.UserId)
	if err != nil {
		return nil, err
	}

	existed, err := db.DeleteVideoLike(ctx, req.VideoId, req.UserId)
	if err != nil {
		return nil, err
	}
	if !existed {
		return nil, errno.NotFoundErr.WithMessage("video is not liked by this user")
	}

	if err := s.syncLikeCount(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *InteractionService) loadLikeTarget(ctx context.Context, videoId, userId int64) (*model.Video, error) {
	video, err := db.GetVideoById(ctx, videoId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}
	if err != nil {
		return nil, err
	}
	if video.IsDeleted {
		return nil, errno.NotFoundErr.WithMessage("video does not exist")
	}
	if !video.VisibleTo(userId) {
		return nil, errno.ForbiddenErr.WithMessage("video is not visible to this user")
	}
	return video, nil
}

// syncLikeCount recomputes LikeCount from the rows inside the transaction
// and writes it through the versioned counter update. The Redis mirror is
// best-effort; the table stays the source of truth.
func (s *InteractionService) syncLikeCount(ctx context.Context, video *model.Video) error {
	count, err := db.GetVideoLikeCount(ctx, video.VideoId)
	if err != nil {
		return err
	}
	video.SyncLikeCount(count)
	if err := db.UpdateVideoCounters(ctx, video); err != nil {
		return err
	}
	if err := redisCache.SetVideoLikeCount(ctx, video.VideoId, count); err != nil {
		hlog.CtxWarnf(ctx, "like count cache update failed: %v", err)
	}
	return nil
}
