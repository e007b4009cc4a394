package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
)

type LikeStatus struct {
	Liked     bool
	LikeCount int64
}

func (s *InteractionService) GetLikeStatus(ctx context.Context, q bus.Query) (interface{}, error) {
	req, ok := q.(*GetLikeStatusQuery)
	if !ok {
		return nil, errno.ParamErr
	}

	liked, err := db.HasVideoLike(ctx, req.VideoId, req.UserId)
	if err != nil {
		return nil, err
	}
	count, err := db.GetVideoLikeCount(ctx, req.VideoId)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Liked: liked, LikeCount: count}, nil
}
