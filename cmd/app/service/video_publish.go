package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"cliphive.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type VideoService struct {
	bus *bus.Bus
}

func NewVideoService(b *bus.Bus) *VideoService {
	return &VideoService{bus: b}
}

// PublishVideo creates the video row once the upload collaborator reports
// the media in place. Counters start at zero.
func (s *VideoService) PublishVideo(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*PublishVideoCommand)
	if !ok {
		return nil, errno.ParamErr
	}

	videoId := req.VideoId
	if videoId == 0 {
		videoId = utils.NextId()
	}
	video, err := model.NewVideo(videoId, req.UserId, req.Title, req.Description,
		req.Visibility, req.VideoUrl, req.CoverUrl, req.ObjectKey)
	if err != nil {
		return nil, err
	}
	if err := db.CreateVideo(ctx, video); err != nil {
		return nil, err
	}

	hlog.CtxInfof(ctx, "video published, video_id=%d user_id=%d", video.VideoId, video.UserId)
	return video, nil
}
