package tool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keyrates/toolschema/middleware"
	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/schema"
)

type echoInput struct {
	Text string `json:"text" jsonschema:"description=Text to echo"`
}

func newEchoRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	reg := NewRegistry(opts...)
	_, err := reg.Tool("echo").
		Description("Echo text back").
		Handler(func(ctx context.Context, in echoInput) (string, error) { return in.Text, nil }).
		Build()
	if err != nil {
		t.Fatalf("register echo: %v", err)
	}
	return reg
}

func TestRegistry(t *testing.T) {
	t.Run("registers built tools", func(t *testing.T) {
		reg := newEchoRegistry(t)
		tl, ok := reg.Get("echo")
		if !ok {
			t.Fatal("expected echo to be registered")
		}
		if tl.Name() != "echo" {
			t.Errorf("Name() = %q", tl.Name())
		}
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		reg := newEchoRegistry(t)
		_, err := reg.Tool("echo").Description("again").Build()
		if err == nil {
			t.Fatal("expected duplicate error")
		}
		if got := len(reg.Names()); got != 1 {
			t.Errorf("len(Names) = %d, want 1", got)
		}
	})

	t.Run("rejects duplicate names within one batch", func(t *testing.T) {
		reg := NewRegistry()
		err := reg.Register(
			New("dup").Description("first").MustBuild(),
			New("dup").Description("second").MustBuild(),
		)
		if err == nil {
			t.Fatal("expected duplicate error")
		}
		if got := len(reg.Names()); got != 0 {
			t.Errorf("len(Names) = %d, want 0", got)
		}
		schemas, err := reg.Schemas()
		if err != nil {
			t.Fatalf("Schemas: %v", err)
		}
		if got := len(schemas); got != 0 {
			t.Errorf("len(Schemas) = %d, want 0", got)
		}
	})

	t.Run("lists schemas in registration order", func(t *testing.T) {
		reg := NewRegistry()
		for _, name := range []string{"zeta", "alpha", "mid"} {
			if err := reg.Register(New(name).Description(name).MustBuild()); err != nil {
				t.Fatalf("register %s: %v", name, err)
			}
		}

		schemas, err := reg.Schemas()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var names []string
		for _, s := range schemas {
			names = append(names, s.Name)
		}
		if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, names); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}

		selected, err := reg.Schemas("mid")
		if err != nil || len(selected) != 1 || selected[0].Name != "mid" {
			t.Errorf("Schemas(mid) = %v, %v", selected, err)
		}

		if _, err := reg.Schemas("missing"); !errors.Is(err, protocol.ErrUnknownTool) {
			t.Errorf("expected unknown tool error, got %v", err)
		}
	})

	t.Run("logs registrations", func(t *testing.T) {
		logger := &recordingLogger{}
		newEchoRegistry(t, WithLogger(logger))
		if len(logger.debug) != 1 || logger.debug[0] != "tool registered" {
			t.Errorf("debug entries = %v", logger.debug)
		}
	})
}

func TestRegistry_Invoke(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to handler", func(t *testing.T) {
		reg := newEchoRegistry(t)
		call, _ := protocol.NewCall("c1", "echo", map[string]any{"text": "hello"})

		res, err := reg.Invoke(ctx, call)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "c1" || res.Name != "echo" || res.Content != "hello" {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		reg := newEchoRegistry(t)
		_, err := reg.Invoke(ctx, &protocol.Call{Name: "missing"})
		if !errors.Is(err, protocol.ErrUnknownTool) {
			t.Fatalf("expected unknown tool error, got %v", err)
		}
	})

	t.Run("call without name", func(t *testing.T) {
		reg := newEchoRegistry(t)
		if _, err := reg.Invoke(ctx, &protocol.Call{}); !errors.Is(err, protocol.ErrInvalidRequest) {
			t.Fatalf("expected invalid request, got %v", err)
		}
	})

	t.Run("wraps handler errors", func(t *testing.T) {
		want := errors.New("upstream down")
		reg := NewRegistry()
		reg.Tool("fail").Description("Fail").
			Handler(func(ctx context.Context) (any, error) { return nil, want }).
			MustBuild()

		_, err := reg.Invoke(ctx, &protocol.Call{Name: "fail"})
		if !errors.Is(err, want) {
			t.Fatalf("expected handler error in chain, got %v", err)
		}
	})

	t.Run("runs middleware in order", func(t *testing.T) {
		var order []string
		record := func(name string) middleware.Middleware {
			return func(next middleware.HandlerFunc) middleware.HandlerFunc {
				return func(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
					order = append(order, name)
					return next(ctx, call)
				}
			}
		}

		reg := newEchoRegistry(t, WithMiddleware(record("first")))
		reg.Use(record("second"))

		if _, err := reg.Invoke(ctx, &protocol.Call{Name: "echo"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("middleware can refuse calls", func(t *testing.T) {
		reg := newEchoRegistry(t)
		reg.Use(middleware.AllowTools([]string{"other"}))

		if _, err := reg.Invoke(ctx, &protocol.Call{Name: "echo"}); !errors.Is(err, protocol.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("recovers panics through default stack", func(t *testing.T) {
		reg := NewRegistry(WithMiddleware(middleware.DefaultStack(middleware.NopLogger{})...))
		reg.Tool("panic").Description("Panics").
			Handler(func(ctx context.Context) (any, error) { panic("boom") }).
			MustBuild()

		if _, err := reg.Invoke(ctx, &protocol.Call{Name: "panic"}); !errors.Is(err, protocol.ErrInternal) {
			t.Fatalf("expected internal error, got %v", err)
		}
	})

	t.Run("concurrent registration and invocation", func(t *testing.T) {
		reg := newEchoRegistry(t)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				name := fmt.Sprintf("tool_%d", i)
				_ = reg.Register(New(name).Description("generated").
					Param("n", schema.Integer(), schema.Describe("N")).MustBuild())
			}(i)
			go func() {
				defer wg.Done()
				if _, err := reg.Invoke(ctx, &protocol.Call{Name: "echo"}); err != nil {
					t.Errorf("invoke: %v", err)
				}
			}()
		}
		wg.Wait()

		if got := len(reg.Names()); got != 21 {
			t.Errorf("len(Names) = %d, want 21", got)
		}
	})
}

type recordingLogger struct {
	middleware.NopLogger
	debug []string
}

func (l *recordingLogger) Debug(msg string, fields ...middleware.Field) {
	l.debug = append(l.debug, msg)
}
