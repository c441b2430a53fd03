// Package middleware provides middleware around tool invocations.
//
// Each middleware wraps the next handler in the chain, so it sees the call
// before the tool runs and the result or error afterwards.
//
// # Basic Usage
//
//	reg := tool.NewRegistry()
//	reg.Use(
//	    middleware.Recover(),
//	    middleware.RequestID(),
//	    middleware.Logging(logger),
//	    middleware.AllowTools([]string{"http_request"}),
//	)
//
// # Available Middleware
//
//   - Recover: converts handler panics into internal errors
//   - RequestID: gives every call an ID, reusing the vendor's call ID
//   - Timeout: bounds each call with a deadline
//   - Logging: logs tool, vendor, duration and outcome
//   - RateLimit, RateLimitByTool, RateLimitByVendor: token bucket limits
//   - SizeLimit: rejects oversized arguments
//   - Authorize, AllowTools: refuse calls by policy
//   - OTel: spans and metrics per call
//
// # Default Stacks
//
//	stack := middleware.DefaultStack(logger)
//	stack := middleware.DefaultStackWithTimeout(logger, 30*time.Second)
package middleware
