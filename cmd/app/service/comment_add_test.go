package service

import (
	"context"
	"testing"

	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
)

// Content validation must reject before any persistence call: the global
// DB is nil in this test, so a handler that touched storage would panic.
func TestAddCommentValidatesBeforePersistence(t *testing.T) {
	s := NewInteractionService(bus.New())

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := s.AddComment(context.Background(), &AddCommentCommand{
			UserId: 1, VideoId: 2, Content: content,
		})
		if e := errno.ConvertErr(err); e.ErrCode != errno.ParamErrCode {
			t.Errorf("content %q: got %v, want a validation failure", content, err)
		}
	}
}

func TestHandlersRejectForeignCommandType(t *testing.T) {
	s := NewInteractionService(bus.New())
	_, err := s.AddComment(context.Background(), &LikeVideoCommand{UserId: 1, VideoId: 2})
	if e := errno.ConvertErr(err); e.ErrCode != errno.ParamErrCode {
		t.Errorf("foreign command type: got %v, want param error", err)
	}
}
