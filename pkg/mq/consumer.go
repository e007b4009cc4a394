package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

// ViewSink receives aggregated view counts. The service layer implements
// it by dispatching a RecordView command per video through the bus, so the
// durable counter update runs under the usual transaction middleware.
type ViewSink interface {
	RecordViews(ctx context.Context, videoId int64, views int64) error
}

type Consumer struct {
	conn          *amqp091.Connection
	channel       *amqp091.Channel
	sink          ViewSink
	flushInterval time.Duration
}

func NewConsumer(rabbitmqURL string, sink ViewSink) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return &Consumer{
		conn:          conn,
		channel:       ch,
		sink:          sink,
		flushInterval: 5 * time.Second,
	}, nil
}

// Run consumes view events until ctx is done, aggregating per-video counts
// and flushing them on a fixed tick. Deliveries are acked only after the
// flush that contains them succeeds; on a failed flush the batch is
// requeued and counted again, which is acceptable for view counters.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		ViewEventQueue,
		"view-aggregator",
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	pending := make(map[int64]int64)
	var lastTag uint64
	var haveTag bool

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		failed := false
		for videoId, views := range pending {
			if err := c.sink.RecordViews(ctx, videoId, views); err != nil {
				hlog.CtxErrorf(ctx, "failed to record %d views for video %d: %v", views, videoId, err)
				failed = true
			}
		}
		if failed {
			// Requeue the whole batch; the view counter tolerates replays.
			if err := c.channel.Nack(lastTag, true, true); err != nil {
				hlog.CtxErrorf(ctx, "failed to nack view batch: %v", err)
			}
		} else if haveTag {
			if err := c.channel.Ack(lastTag, true); err != nil {
				hlog.CtxErrorf(ctx, "failed to ack view batch: %v", err)
			}
		}
		pending = make(map[int64]int64)
		haveTag = false
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return ctx.Err()
		case <-ticker.C:
			flush()
		case d, ok := <-deliveries:
			if !ok {
				flush()
				return nil
			}
			var event ViewEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				hlog.Warnf("dropping malformed view event: %v", err)
				_ = c.channel.Ack(d.DeliveryTag, false)
				continue
			}
			pending[event.VideoID]++
			lastTag = d.DeliveryTag
			haveTag = true
		}
	}
}

func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
