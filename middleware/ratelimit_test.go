package middleware_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/keyrates/toolschema/middleware"
	"github.com/keyrates/toolschema/protocol"
)

func okHandler(ctx context.Context, call *protocol.Call) (*protocol.Result, error) {
	return protocol.NewResult(call, "ok"), nil
}

func TestRateLimit(t *testing.T) {
	t.Run("allows calls within limit", func(t *testing.T) {
		handler := middleware.RateLimit(10, 10)(okHandler)

		for i := 0; i < 5; i++ {
			res, err := handler(context.Background(), &protocol.Call{Name: "t"})
			if err != nil {
				t.Fatalf("call %d: unexpected error: %v", i, err)
			}
			if res == nil {
				t.Fatalf("call %d: expected result", i)
			}
		}
	})

	t.Run("rejects calls exceeding limit", func(t *testing.T) {
		handler := middleware.RateLimit(1, 1)(okHandler)
		call := &protocol.Call{Name: "t"}

		if _, err := handler(context.Background(), call); err != nil {
			t.Fatalf("first call failed: %v", err)
		}

		_, err := handler(context.Background(), call)
		if !errors.Is(err, protocol.ErrRateLimited) {
			t.Fatalf("expected rate limit error, got %v", err)
		}
	})

	t.Run("limits per tool", func(t *testing.T) {
		handler := middleware.RateLimitByTool(1, 1)(okHandler)

		if _, err := handler(context.Background(), &protocol.Call{Name: "a"}); err != nil {
			t.Fatalf("tool a: %v", err)
		}
		if _, err := handler(context.Background(), &protocol.Call{Name: "b"}); err != nil {
			t.Fatalf("tool b should have its own bucket: %v", err)
		}
		if _, err := handler(context.Background(), &protocol.Call{Name: "a"}); err == nil {
			t.Fatal("expected second call to tool a to be limited")
		}
	})

	t.Run("limits per vendor", func(t *testing.T) {
		handler := middleware.RateLimitByVendor(1, 1)(okHandler)

		if _, err := handler(context.Background(), &protocol.Call{Name: "t", Vendor: protocol.VendorGemini}); err != nil {
			t.Fatalf("gemini: %v", err)
		}
		if _, err := handler(context.Background(), &protocol.Call{Name: "t", Vendor: protocol.VendorOpenAI}); err != nil {
			t.Fatalf("openai should have its own bucket: %v", err)
		}
	})

	t.Run("logs rejections", func(t *testing.T) {
		var mu sync.Mutex
		var warned int
		logger := &countingLogger{warn: func() { mu.Lock(); warned++; mu.Unlock() }}

		handler := middleware.RateLimit(1, 1, middleware.WithRateLimitLogger(logger))(okHandler)
		_, _ = handler(context.Background(), &protocol.Call{Name: "t"})
		_, _ = handler(context.Background(), &protocol.Call{Name: "t"})

		if warned != 1 {
			t.Errorf("warn count = %d, want 1", warned)
		}
	})

	t.Run("concurrent calls respect burst", func(t *testing.T) {
		handler := middleware.RateLimit(1, 5)(okHandler)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := handler(context.Background(), &protocol.Call{Name: "t"}); err == nil {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if allowed > 6 {
			t.Errorf("allowed %d calls, want at most burst plus refill", allowed)
		}
		if allowed == 0 {
			t.Error("expected some calls to be allowed")
		}
	})
}

type countingLogger struct {
	middleware.NopLogger
	warn func()
}

func (l *countingLogger) Warn(msg string, fields ...middleware.Field) { l.warn() }
