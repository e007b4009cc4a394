package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	redisCache "cliphive.com/cmd/app/infras/redis"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"cliphive.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RecordView applies an aggregated batch of views to the durable counter.
// The request hot path never dispatches this directly; it publishes a view
// event and the consumer batches them here (see ViewRecorder below).
func (s *InteractionService) RecordView(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*RecordViewCommand)
	if !ok {
		return nil, errno.ParamErr
	}
	views := req.Views
	if views < 1 {
		views = 1
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

	for i := int64(0); i < views; i++ {
		video.IncreaseView()
	}
	if err := db.UpdateVideoCounters(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// ViewRecorder is the request-path side: bump the Redis hot counter for
// immediate reads and hand the durable increment to the queue.
type ViewRecorder struct {
	producer *mq.Producer
}

func NewViewRecorder(producer *mq.Producer) *ViewRecorder {
	return &ViewRecorder{producer: producer}
}

func (r *ViewRecorder) RecordView(ctx context.Context, videoId, userId int64) error {
	if err := redisCache.IncrVideoViewInfo(ctx, videoId); err != nil {
		hlog.CtxWarnf(ctx, "view hot counter update failed: %v", err)
	}
	return r.producer.PublishViewEvent(ctx, &mq.ViewEvent{VideoID: videoId, UserID: userId})
}

// BusViewSink adapts the bus to the consumer's sink interface so
// aggregated batches run through the transaction middleware like any
// other command.
type BusViewSink struct {
	bus *bus.Bus
}

func NewBusViewSink(b *bus.Bus) *BusViewSink {
	return &BusViewSink{bus: b}
}

func (s *BusViewSink) RecordViews(ctx context.Context, videoId, views int64) error {
	_, err := s.bus.Dispatch(ctx, &RecordViewCommand{VideoId: videoId, Views: views})
	if errno.IsNotFound(err) {
		// The video went away between the event and the flush; drop it.
		hlog.CtxWarnf(ctx, "dropping views for missing video %d", videoId)
		return nil
	}
	return err
}

var _ mq.ViewSink = (*BusViewSink)(nil)
