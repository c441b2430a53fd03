package tool

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/keyrates/toolschema/middleware"
	"github.com/keyrates/toolschema/protocol"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(l middleware.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithMiddleware installs middleware around every invocation.
func WithMiddleware(m ...middleware.Middleware) Option {
	return func(r *Registry) {
		r.middleware = append(r.middleware, m...)
	}
}

// Registry holds the tools offered to a model and dispatches its calls.
// It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	tools      map[string]*Tool
	order      []string
	middleware []middleware.Middleware
	logger     middleware.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tools:  make(map[string]*Tool),
		logger: middleware.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tool starts building a tool that is registered when built.
func (r *Registry) Tool(name string) *Builder {
	b := New(name)
	b.registry = r
	return b
}

// Register adds built tools. Names must be unique within the registry.
func (r *Registry) Register(tools ...*Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(tools))
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; exists || seen[t.Name()] {
			return fmt.Errorf("tool %q already registered", t.Name())
		}
		seen[t.Name()] = true
	}
	for _, t := range tools {
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
		r.logger.Debug("tool registered",
			middleware.F("tool", t.Name()),
			middleware.F("params", t.schema.ParamNames()),
		)
	}
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Schemas returns the schemas of the named tools, or of every tool in
// registration order when no names are given.
func (r *Registry) Schemas(names ...string) ([]*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(names) == 0 {
		names = r.order
	}
	out := make([]*Schema, 0, len(names))
	for _, name := range names {
		t, ok := r.tools[name]
		if !ok {
			return nil, protocol.NewUnknownTool(name)
		}
		out = append(out, t.schema)
	}
	return out, nil
}

// Use appends middleware run on every invocation.
func (r *Registry) Use(m ...middleware.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, m...)
}

// Invoke dispatches a call to its tool through the middleware chain.
func (r *Registry) Invoke(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
	if call == nil || call.Name == "" {
		return nil, protocol.NewInvalidRequest("call has no tool name")
	}

	r.mu.RLock()
	chain := middleware.Chain(slices.Clone(r.middleware)...)
	r.mu.RUnlock()

	return chain(r.dispatch)(ctx, call)
}

func (r *Registry) dispatch(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
	t, ok := r.Get(call.Name)
	if !ok {
		return nil, protocol.NewUnknownTool(call.Name)
	}

	content, err := t.Execute(ctx, call.Args())
	if err != nil {
		var callErr *protocol.Error
		if errors.As(err, &callErr) {
			return nil, err
		}
		return nil, fmt.Errorf("tool %s: %w", call.Name, err)
	}
	return protocol.NewResult(call, content), nil
}
