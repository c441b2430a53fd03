// Package testutil provides helpers for testing tools and registries.
//
// Example usage:
//
//	func TestLookup(t *testing.T) {
//	    reg := tool.NewRegistry()
//	    testutil.MustCompile(t, reg.Tool("lookup").
//	        Description("Look up a key rate").
//	        Handler(func(ctx context.Context, in LookupInput) (float64, error) {
//	            return 18.5, nil
//	        }))
//
//	    tc := testutil.NewTestClient(t, reg)
//	    tc.AssertRequired("lookup", "date")
//
//	    got, err := tc.CallTool("lookup", map[string]any{"date": "2025-07-01"})
//	    ...
//	}
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/tool"
)

// TestClient invokes tools of a registry the way an adapter would, through
// the registry's middleware chain.
type TestClient struct {
	t      testing.TB
	reg    *tool.Registry
	vendor protocol.Vendor
	callID int64
	mu     sync.Mutex
}

// NewTestClient creates a test client for the given registry.
func NewTestClient(t testing.TB, reg *tool.Registry) *TestClient {
	t.Helper()
	return &TestClient{t: t, reg: reg}
}

// WithVendor marks subsequent calls as coming from vendor v.
func (tc *TestClient) WithVendor(v protocol.Vendor) *TestClient {
	tc.vendor = v
	return tc
}

func (tc *TestClient) nextID() string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.callID++
	return fmt.Sprintf("call-%d", tc.callID)
}

// CallTool invokes a tool with arguments marshaled from args and returns the
// result content.
func (tc *TestClient) CallTool(name string, args any) (any, error) {
	tc.t.Helper()

	res, err := tc.CallToolRaw(name, args)
	if err != nil {
		return nil, err
	}
	return res.Content, nil
}

// CallToolRaw invokes a tool and returns the full result.
func (tc *TestClient) CallToolRaw(name string, args any) (*protocol.Result, error) {
	tc.t.Helper()

	var raw json.RawMessage
	switch v := args.(type) {
	case nil:
	case json.RawMessage:
		raw = v
	case string:
		raw = json.RawMessage(v)
	default:
		data, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal arguments: %w", err)
		}
		raw = data
	}

	call := &protocol.Call{
		ID:        tc.nextID(),
		Name:      name,
		Arguments: raw,
		Vendor:    tc.vendor,
	}
	return tc.reg.Invoke(context.Background(), call)
}

// ListTools returns the compiled schemas of all registered tools.
func (tc *TestClient) ListTools() []*tool.Schema {
	tc.t.Helper()

	schemas, err := tc.reg.Schemas()
	if err != nil {
		tc.t.Fatalf("failed to list tools: %v", err)
	}
	return schemas
}

// AssertToolExists fails the test if the tool is not registered.
func (tc *TestClient) AssertToolExists(name string) {
	tc.t.Helper()

	if _, ok := tc.reg.Get(name); !ok {
		tc.t.Errorf("expected tool %q to exist, registered: %v", name, tc.reg.Names())
	}
}

// AssertRequired fails the test unless the tool's required parameters are
// exactly want, in order.
func (tc *TestClient) AssertRequired(name string, want ...string) {
	tc.t.Helper()

	tl, ok := tc.reg.Get(name)
	if !ok {
		tc.t.Errorf("expected tool %q to exist", name)
		return
	}
	if want == nil {
		want = []string{}
	}
	if got := tl.Schema().Required; !slices.Equal(got, want) {
		tc.t.Errorf("tool %q required = %v, want %v", name, got, want)
	}
}

// AssertErrorCode fails the test unless err is a *protocol.Error with code.
func AssertErrorCode(t testing.TB, err error, code int) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error with code %d, got nil", code)
		return
	}
	if !protocol.IsCode(err, code) {
		t.Errorf("expected error with code %d, got %v", code, err)
	}
}

// MustCompile builds the tool or fails the test.
func MustCompile(t testing.TB, b *tool.Builder) *tool.Tool {
	t.Helper()

	tl, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build tool: %v", err)
	}
	return tl
}

// MustSchema compiles a schema or fails the test.
func MustSchema(t testing.TB, name, description string, params ...tool.Param) *tool.Schema {
	t.Helper()

	s, err := tool.Compile(name, description, params...)
	if err != nil {
		t.Fatalf("failed to compile %s: %v", name, err)
	}
	return s
}
