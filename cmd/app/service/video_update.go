package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UpdateVideo applies an owner-only metadata change. A missing or deleted
// video is NotFound; an existing video that belongs to someone else is
// Forbidden, not NotFound.
func (s *VideoService) UpdateVideo(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*UpdateVideoCommand)
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
		return nil, errno.ForbiddenErr.WithMessage("only the uploader may edit a video")
	}

	if err := video.ApplyInfoUpdate(req.Title, req.Description, req.Visibility); err != nil {
		return nil, err
	}
	if err := db.UpdateVideoInfo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}
