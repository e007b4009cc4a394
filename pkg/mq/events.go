package mq

// ViewEvent records one playback start. Events are aggregated by the
// consumer before they reach the durable counter, so the write path for
// views stays off the request hot path.
type ViewEvent struct {
	EventID   string `json:"event_id"`
	VideoID   int64  `json:"video_id"`
	UserID    int64  `json:"user_id"` // 0 for anonymous viewers
	Timestamp int64  `json:"timestamp"`
}

const (
	ViewEventExchange   = "view_events"
	ViewEventQueue      = "view_event_queue"
	ViewEventRoutingKey = "video.view"
)
