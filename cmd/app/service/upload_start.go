package service

import (
	"context"

	"cliphive.com/pkg/errno"
	"cliphive.com/pkg/oss"
	"cliphive.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// UploadSlots pairs the video and cover presigned targets for one upload.
// The caller PUTs the media, then dispatches PublishVideo with the keys
// and public URLs echoed back from here.
type UploadSlots struct {
	VideoId int64
	Video   *oss.UploadSlot
	Cover   *oss.UploadSlot
}

type UploadService struct{}

func NewUploadService() *UploadService {
	return &UploadService{}
}

// StartUpload allocates the video id up front so the object keys are
// stable before the row exists. Nothing is persisted here; an abandoned
// upload leaves at most unreferenced objects behind.
func (s *UploadService) StartUpload(ctx context.Context, userId int64) (*UploadSlots, error) {
	if !oss.Ready() {
		return nil, errno.OssErr.WithMessage("object storage is not configured")
	}

	videoId := utils.NextId()
	videoSlot, err := oss.NewVideoUploadSlot(ctx, userId, videoId)
	if err != nil {
		return nil, err
	}
	coverSlot, err := oss.NewCoverUploadSlot(ctx, userId, videoId)
	if err != nil {
		return nil, err
	}

	hlog.CtxInfof(ctx, "upload slots issued, user_id=%d video_id=%d", userId, videoId)
	return &UploadSlots{VideoId: videoId, Video: videoSlot, Cover: coverSlot}, nil
}
