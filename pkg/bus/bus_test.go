package bus

import (
	"context"
	"testing"

	"cliphive.com/pkg/errno"
)

type fakeCommand struct{ name string }

func (c *fakeCommand) CommandName() string { return c.name }

type fakeQuery struct{ name string }

func (q *fakeQuery) QueryName() string { return q.name }

func TestDispatchRoutesToHandler(t *testing.T) {
	b := New()
	b.RegisterCommand("AddComment", func(ctx context.Context, cmd Command) (interface{}, error) {
		return "handled:" + cmd.CommandName(), nil
	})

	res, err := b.Dispatch(context.Background(), &fakeCommand{name: "AddComment"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if res != "handled:AddComment" {
		t.Errorf("unexpected result: %v", res)
	}
}

func TestDispatchUnregisteredCommand(t *testing.T) {
	b := New()
	_, err := b.Dispatch(context.Background(), &fakeCommand{name: "Nope"})
	if err == nil {
		t.Fatal("expected error for unregistered command")
	}
	if e := errno.ConvertErr(err); e.ErrCode != errno.ServiceErrCode {
		t.Errorf("unexpected error kind: %v", e)
	}
}

func TestMiddlewareOrderAndQueryBypass(t *testing.T) {
	var trace []string
	mw := func(tag string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return func(ctx context.Context, cmd Command) (interface{}, error) {
				trace = append(trace, tag+":before")
				res, err := next(ctx, cmd)
				trace = append(trace, tag+":after")
				return res, err
			}
		}
	}

	b := New(mw("outer"), mw("inner"))
	b.RegisterCommand("Write", func(ctx context.Context, cmd Command) (interface{}, error) {
		trace = append(trace, "handler")
		return nil, nil
	})
	b.RegisterQuery("Read", func(ctx context.Context, q Query) (interface{}, error) {
		trace = append(trace, "query")
		return nil, nil
	})

	t.Run("CommandRunsThroughChain", func(t *testing.T) {
		trace = trace[:0]
		if _, err := b.Dispatch(context.Background(), &fakeCommand{name: "Write"}); err != nil {
			t.Fatal(err)
		}
		want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
		if len(trace) != len(want) {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
		for i := range want {
			if trace[i] != want[i] {
				t.Fatalf("trace = %v, want %v", trace, want)
			}
		}
	})

	t.Run("QuerySkipsChain", func(t *testing.T) {
		trace = trace[:0]
		if _, err := b.Ask(context.Background(), &fakeQuery{name: "Read"}); err != nil {
			t.Fatal(err)
		}
		if len(trace) != 1 || trace[0] != "query" {
			t.Fatalf("query must bypass middleware, trace = %v", trace)
		}
	})
}

func TestMiddlewareErrorPropagatesUnchanged(t *testing.T) {
	sentinel := errno.ParamErr.WithMessage("boom")
	b := New(func(next CommandHandler) CommandHandler {
		return func(ctx context.Context, cmd Command) (interface{}, error) {
			return next(ctx, cmd)
		}
	})
	b.RegisterCommand("Fail", func(ctx context.Context, cmd Command) (interface{}, error) {
		return nil, sentinel
	})

	_, err := b.Dispatch(context.Background(), &fakeCommand{name: "Fail"})
	if errno.ConvertErr(err) != sentinel {
		t.Errorf("handler error was altered: %v", err)
	}
}
