package testutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/keyrates/toolschema/middleware"
	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/schema"
	"github.com/keyrates/toolschema/testutil"
	"github.com/keyrates/toolschema/tool"
)

type greetInput struct {
	Name string `json:"name" jsonschema:"required,description=Who to greet"`
}

func newRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	reg := tool.NewRegistry()

	testutil.MustCompile(t, reg.Tool("greet").
		Description("Greet someone").
		ValidateInput().
		Handler(func(ctx context.Context, input greetInput) (string, error) {
			return "Hello, " + input.Name + "!", nil
		}))

	testutil.MustCompile(t, reg.Tool("error-tool").
		Description("Always fails").
		Handler(func(ctx context.Context) (string, error) {
			return "", errors.New("intentional error")
		}))

	return reg
}

func TestTestClient_Tools(t *testing.T) {
	client := testutil.NewTestClient(t, newRegistry(t))

	t.Run("ListTools", func(t *testing.T) {
		tools := client.ListTools()
		if len(tools) != 2 {
			t.Fatalf("expected 2 tools, got %d", len(tools))
		}
		if tools[0].Name != "greet" || tools[1].Name != "error-tool" {
			t.Errorf("unexpected order: %s, %s", tools[0].Name, tools[1].Name)
		}
	})

	t.Run("CallTool", func(t *testing.T) {
		got, err := client.CallTool("greet", map[string]any{"name": "World"})
		if err != nil {
			t.Fatalf("CallTool failed: %v", err)
		}
		if got != "Hello, World!" {
			t.Errorf("expected 'Hello, World!', got %v", got)
		}
	})

	t.Run("CallTool with raw JSON", func(t *testing.T) {
		got, err := client.CallTool("greet", `{"name":"raw"}`)
		if err != nil {
			t.Fatalf("CallTool failed: %v", err)
		}
		if got != "Hello, raw!" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("CallToolRaw assigns IDs", func(t *testing.T) {
		res, err := client.CallToolRaw("greet", map[string]any{"name": "x"})
		if err != nil {
			t.Fatalf("CallToolRaw failed: %v", err)
		}
		if res.ID == "" || res.Name != "greet" {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("invalid arguments", func(t *testing.T) {
		_, err := client.CallTool("greet", map[string]any{})
		testutil.AssertErrorCode(t, err, protocol.CodeInvalidArguments)
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := client.CallTool("nope", nil)
		testutil.AssertErrorCode(t, err, protocol.CodeUnknownTool)
	})

	t.Run("handler error", func(t *testing.T) {
		_, err := client.CallTool("error-tool", nil)
		if err == nil || err.Error() != "tool error-tool: intentional error" {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestTestClient_WithVendor(t *testing.T) {
	reg := newRegistry(t)
	reg.Use(middleware.Authorize(middleware.AllowVendors(protocol.VendorGemini)))

	if _, err := testutil.NewTestClient(t, reg).CallTool("greet", map[string]any{"name": "local"}); err != nil {
		t.Fatalf("local call should be allowed: %v", err)
	}

	_, err := testutil.NewTestClient(t, reg).WithVendor(protocol.VendorOpenAI).
		CallTool("greet", map[string]any{"name": "remote"})
	testutil.AssertErrorCode(t, err, protocol.CodeForbidden)
}

func TestAssertions(t *testing.T) {
	client := testutil.NewTestClient(t, newRegistry(t))

	client.AssertToolExists("greet")
	client.AssertRequired("greet", "name")
	client.AssertRequired("error-tool")
}

func TestMustSchema(t *testing.T) {
	s := testutil.MustSchema(t, "move", "Move a record",
		tool.P("url", schema.String(), schema.Describe("Target URL")),
		tool.P("data", schema.Nullable(schema.Object()), schema.Describe("Body")),
	)
	if len(s.Required) != 1 || s.Required[0] != "url" {
		t.Errorf("Required = %v", s.Required)
	}
}
