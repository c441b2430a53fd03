// Package toolschema compiles tool signatures into the function-calling
// schemas of LLM vendors and dispatches the calls models make back to the
// tools.
//
// Basic usage:
//
//	reg := toolschema.NewRegistry()
//
//	type LookupInput struct {
//	    Date string `json:"date" jsonschema:"required,description=Effective date"`
//	}
//
//	reg.Tool("lookup").
//	    Description("Look up the key rate").
//	    Handler(func(ctx context.Context, in LookupInput) (float64, error) {
//	        return 18.5, nil
//	    }).
//	    MustBuild()
//
//	schemas, _ := reg.Schemas()
//	decl, _ := toolschema.Render(toolschema.VendorGemini, schemas)
//
// Calls returned by a model are converted with the adapter packages and run
// with reg.Invoke.
package toolschema

import (
	"fmt"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/keyrates/toolschema/adapter/fantasy"
	"github.com/keyrates/toolschema/adapter/gemini"
	"github.com/keyrates/toolschema/adapter/gigachat"
	jsondoc "github.com/keyrates/toolschema/adapter/jsonschema"
	"github.com/keyrates/toolschema/adapter/openai"
	"github.com/keyrates/toolschema/middleware"
	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/schema"
	"github.com/keyrates/toolschema/tool"
)

// Core types.
type (
	Schema   = tool.Schema
	Param    = tool.Param
	Tool     = tool.Tool
	Builder  = tool.Builder
	Registry = tool.Registry
	Option   = tool.Option

	Type  = schema.Type
	Field = schema.Field
	Node  = schema.Node

	Call   = protocol.Call
	Result = protocol.Result
	Vendor = protocol.Vendor
)

// Vendors.
const (
	VendorGemini     = protocol.VendorGemini
	VendorOpenAI     = protocol.VendorOpenAI
	VendorFantasy    = protocol.VendorFantasy
	VendorGigaChat   = protocol.VendorGigaChat
	VendorJSONSchema = protocol.VendorJSONSchema
)

// Middleware types
type Middleware = middleware.Middleware
type Logger = middleware.Logger
type LogField = middleware.Field

// Re-exports for convenience.
var (
	Compile              = tool.Compile
	NewRegistry          = tool.NewRegistry
	NewTool              = tool.New
	P                    = tool.P
	WithLogger           = tool.WithLogger
	WithMiddleware       = tool.WithMiddleware
	ParseVendor          = protocol.ParseVendor
	Recover              = middleware.Recover
	RequestID            = middleware.RequestID
	RequestIDFromContext = middleware.RequestIDFromContext
	Logging              = middleware.Logging
	Timeout              = middleware.Timeout
	SizeLimit            = middleware.SizeLimit
	AllowTools           = middleware.AllowTools
	RateLimit            = middleware.RateLimit
	LogF                 = middleware.F
)

// Size limit presets.
const (
	KB = middleware.KB
	MB = middleware.MB
)

// DefaultMiddleware returns the recommended production middleware stack.
func DefaultMiddleware(logger Logger) []Middleware {
	return middleware.DefaultStack(logger)
}

// DefaultMiddlewareWithTimeout returns the default stack with a timeout middleware.
func DefaultMiddlewareWithTimeout(logger Logger, timeout time.Duration) []Middleware {
	return middleware.DefaultStackWithTimeout(logger, timeout)
}

// Render converts compiled schemas into the tool declarations of vendor v:
//
//   - gemini: *genai.Tool
//   - openai: []openai.ChatCompletionToolParam
//   - fantasy: []fantasy.Tool
//   - gigachat: []*gigachat.Function
//   - jsonschema: []*jsonschema.Schema, one document per tool
func Render(v Vendor, schemas []*Schema) (any, error) {
	switch v {
	case VendorGemini:
		return gemini.Tool(schemas), nil
	case VendorOpenAI:
		return openai.Tools(schemas), nil
	case VendorFantasy:
		return fantasy.Tools(schemas), nil
	case VendorGigaChat:
		return gigachat.Functions(schemas)
	case VendorJSONSchema:
		docs := make([]*jsonschema.Schema, len(schemas))
		for i, s := range schemas {
			docs[i] = jsondoc.Document(s, jsondoc.WithVersion())
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("unknown vendor %q", v)
	}
}
