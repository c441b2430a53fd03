// Package tool compiles tool definitions into vendor-neutral schemas and
// dispatches model calls to their handlers.
//
// # Compiling
//
// Compile takes a name, a description and ordered parameters:
//
//	s, err := tool.Compile("move", "Move a document",
//	    tool.P("method", schema.Enum("HTTPMethod", "GET", "POST"), schema.Describe("HTTP verb")),
//	    tool.P("url", schema.String(), schema.Describe("Target URL")),
//	    tool.P("data", schema.Nullable(schema.Object()), schema.Describe("Request body")),
//	)
//	// s.Required == []string{"method", "url"}
//
// # Building
//
// The fluent Builder also binds a handler:
//
//	t, err := tool.New("echo").
//	    Description("Echo text back").
//	    Handler(func(ctx context.Context, in EchoInput) (string, error) {
//	        return in.Text, nil
//	    }).
//	    Build()
//
// When no parameters are declared, they are derived from the handler's struct
// input using json and jsonschema tags.
//
// # Dispatching
//
// A Registry holds tools, lists their schemas for a vendor adapter and
// invokes calls through middleware:
//
//	reg := tool.NewRegistry(tool.WithLogger(logger))
//	reg.Use(middleware.DefaultStack(logger)...)
//	res, err := reg.Invoke(ctx, call)
package tool
