package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	redisCache "cliphive.com/cmd/app/infras/redis"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"cliphive.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// VideoDetail is a video plus a short-lived presigned playback URL when
// the storage collaborator is wired. LiveViewCount overlays the Redis hot
// counter, which runs ahead of the durable ViewCount between consumer
// flushes; it is display-only and never written back.
type VideoDetail struct {
	Video         *model.Video
	PlaybackURL   string
	LiveViewCount int64
}

// VideoPage is one page of a keyset-paginated listing. NextCursor is empty
// on the last page.
type VideoPage struct {
	Videos     []*model.Video
	NextCursor string
}

// GetVideo distinguishes "does not exist" from "exists but is not visible
// to this caller".
func (s *VideoService) GetVideo(ctx context.Context, q bus.Query) (interface{}, error) {
	req, ok := q.(*GetVideoQuery)
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

	detail := &VideoDetail{Video: video, LiveViewCount: video.ViewCount}
	if hot, err := redisCache.GetVideoViewCount(ctx, video.VideoId); err == nil && hot > detail.LiveViewCount {
		detail.LiveViewCount = hot
	}
	if oss.Ready() && video.ObjectKey != "" {
		url, err := oss.PlaybackURL(ctx, video.ObjectKey)
		if err != nil {
			hlog.CtxWarnf(ctx, "playback presign failed for video %d: %v", video.VideoId, err)
		} else {
			detail.PlaybackURL = url
		}
	}
	return detail, nil
}

func (s *VideoService) ListFeed(ctx context.Context, q bus.Query) (interface{}, error) {
	req, ok := q.(*ListFeedQuery)
	if !ok {
		return nil, errno.ParamErr
	}

	pos := decodeCursor(req.Cursor)
	limit := clampLimit(req.Limit)
	videos, err := db.ListFeed(ctx, pos, limit)
	if err != nil {
		return nil, err
	}
	return &VideoPage{Videos: videos, NextCursor: nextVideoCursor(videos, limit, pos)}, nil
}

func (s *VideoService) ListUserVideos(ctx context.Context, q bus.Query) (interface{}, error) {
	req, ok := q.(*ListUserVideosQuery)
	if !ok {
		return nil, errno.ParamErr
	}

	pos := decodeCursor(req.Cursor)
	limit := clampLimit(req.Limit)
	videos, err := db.ListUserVideos(ctx, req.UserId, req.CallerId == req.UserId, pos, limit)
	if err != nil {
		return nil, err
	}
	return &VideoPage{Videos: videos, NextCursor: nextVideoCursor(videos, limit, pos)}, nil
}
