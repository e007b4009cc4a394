package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"cliphive.com/pkg/oss"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SoftDeleteVideo marks the row deleted; the row and its comments stay.
func (s *VideoService) SoftDeleteVideo(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*SoftDeleteVideoCommand)
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
	if !video.OwnedBy(req.UserId) {
		return nil, errno.ForbiddenErr.WithMessage("only the uploader may delete a video")
	}

	video.SoftDelete()
	if err := db.SoftDeleteVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// DeleteVideo is the outward-facing wrapper: it dispatches the command and
// only after the transaction committed drops the stored media, so a
// rollback never leaves a live row pointing at deleted bytes.
func (s *VideoService) DeleteVideo(ctx context.Context, userId, videoId int64) error {
	res, err := s.bus.Dispatch(ctx, &SoftDeleteVideoCommand{UserId: userId, VideoId: videoId})
	if err != nil {
		return err
	}
	if video, ok := res.(*model.Video); ok && oss.Ready() {
		oss.RemoveVideoObjects(ctx, video.UserId, video.VideoId)
	}
	return nil
}
