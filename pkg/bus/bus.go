package bus

import (
	"context"
	"sync"

	"cliphive.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Command marks a request as a mutation. Commands always run through the
// registered middleware chain (transactional wrapping included).
type Command interface {
	CommandName() string
}

// Query marks a request as read-only. Queries are dispatched straight to
// their handler and never see command middleware.
type Query interface {
	QueryName() string
}

type CommandHandler func(ctx context.Context, cmd Command) (interface{}, error)

type QueryHandler func(ctx context.Context, q Query) (interface{}, error)

// Middleware wraps command execution. Middleware registered first runs
// outermost.
type Middleware func(next CommandHandler) CommandHandler

// Bus routes each request to exactly one handler by its declared name.
// Registration happens once at startup; dispatch is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	commands map[string]CommandHandler
	queries  map[string]QueryHandler
	mws      []Middleware
}

func New(mws ...Middleware) *Bus {
	return &Bus{
		commands: make(map[string]CommandHandler),
		queries:  make(map[string]QueryHandler),
		mws:      mws,
	}
}

func (b *Bus) RegisterCommand(name string, h CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.commands[name]; ok {
		hlog.Warnf("command handler for %s registered twice, keeping the new one", name)
	}
	b.commands[name] = b.wrap(h)
}

func (b *Bus) RegisterQuery(name string, h QueryHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.queries[name]; ok {
		hlog.Warnf("query handler for %s registered twice, keeping the new one", name)
	}
	b.queries[name] = h
}

// Dispatch routes a command through the middleware chain to its handler.
func (b *Bus) Dispatch(ctx context.Context, cmd Command) (interface{}, error) {
	b.mu.RLock()
	h, ok := b.commands[cmd.CommandName()]
	b.mu.RUnlock()
	if !ok {
		return nil, errno.ServiceErr.WithMessage("no handler registered for command " + cmd.CommandName())
	}
	return h(ctx, cmd)
}

// Ask routes a query directly to its handler, bypassing all middleware.
func (b *Bus) Ask(ctx context.Context, q Query) (interface{}, error) {
	b.mu.RLock()
	h, ok := b.queries[q.QueryName()]
	b.mu.RUnlock()
	if !ok {
		return nil, errno.ServiceErr.WithMessage("no handler registered for query " + q.QueryName())
	}
	return h(ctx, q)
}

// HandlesCommand reports whether a command handler is registered under name.
func (b *Bus) HandlesCommand(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.commands[name]
	return ok
}

// HandlesQuery reports whether a query handler is registered under name.
func (b *Bus) HandlesQuery(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.queries[name]
	return ok
}

// wrap composes the middleware chain around h, first-registered outermost.
func (b *Bus) wrap(h CommandHandler) CommandHandler {
	for i := len(b.mws) - 1; i >= 0; i-- {
		h = b.mws[i](h)
	}
	return h
}
