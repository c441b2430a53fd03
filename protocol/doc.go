// Package protocol defines the vendor-neutral tool call and result values and
// the coded errors returned when an invocation fails.
//
// Vendor adapters convert a model's function-call value into a Call:
//
//	call := &protocol.Call{
//	    ID:        "call_1",
//	    Name:      "http_request",
//	    Arguments: json.RawMessage(`{"method":"GET","url":"http://127.0.0.1/api"}`),
//	    Vendor:    protocol.VendorOpenAI,
//	}
//
// # Error Codes
//
// Invocation errors carry a numeric code, compared by errors.Is:
//
//	CodeInvalidRequest   = -32600  // Malformed call
//	CodeUnknownTool      = -32601  // No tool with that name
//	CodeInvalidArguments = -32602  // Arguments rejected by the tool schema
//	CodeInternalError    = -32603  // Handler failure or panic
//	CodeForbidden        = -32002  // Tool not permitted
//	CodeRateLimited      = -32003  // Too many calls
//
// Compilation errors live in the schema package and are never returned from
// an invocation.
package protocol
