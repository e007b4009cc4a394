package redis

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Hot counters live in sorted sets keyed by video id, mirroring the
// durable counters on the videos table. They absorb the view burst between
// two flushes of the view-event consumer.

const (
	viewSet = "video:views"
	likeSet = "video:likes"
)

func IncrVideoViewInfo(ctx context.Context, videoId int64) error {
	if rdb == nil {
		return nil
	}
	if err := rdb.ZIncrBy(ctx, viewSet, 1, formatId(videoId)).Err(); err != nil {
		return errors.Wrapf(err, "IncrVideoViewInfo failed, video_id=%d", videoId)
	}
	return nil
}

func GetVideoViewCount(ctx context.Context, videoId int64) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	score, err := rdb.ZScore(ctx, viewSet, formatId(videoId)).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "GetVideoViewCount failed, video_id=%d", videoId)
	}
	return int64(score), nil
}

func SetVideoLikeCount(ctx context.Context, videoId, count int64) error {
	if rdb == nil {
		return nil
	}
	err := rdb.ZAdd(ctx, likeSet, goredis.Z{Score: float64(count), Member: formatId(videoId)}).Err()
	return errors.Wrapf(err, "SetVideoLikeCount failed, video_id=%d", videoId)
}

func formatId(id int64) string {
	return strconv.FormatInt(id, 10)
}
