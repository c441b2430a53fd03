package cli

import (
	"github.com/keyrates/toolschema/httptool"
	"github.com/keyrates/toolschema/middleware"
	"github.com/keyrates/toolschema/tool"
)

// registry builds the built-in tools behind the full middleware stack.
func (a *app) registry() (*tool.Registry, error) {
	limits := a.cfg.Limits

	stack := []middleware.Middleware{
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(a.logger),
		middleware.OTel(middleware.WithOTelServiceName(a.cfg.AppName)),
		middleware.RateLimitByTool(limits.Rate, limits.Burst, middleware.WithRateLimitLogger(a.logger)),
		middleware.SizeLimit(int64(limits.MaxBytes), middleware.WithSizeLimitLogger(a.logger)),
	}
	if a.cfg.Timeout > 0 {
		stack = append(stack, middleware.Timeout(a.cfg.Timeout))
	}
	if len(a.cfg.Tools) > 0 {
		stack = append(stack, middleware.AllowTools(a.cfg.Tools, middleware.WithPolicyLogger(a.logger)))
	}

	reg := tool.NewRegistry(tool.WithLogger(a.logger), tool.WithMiddleware(stack...))
	if _, err := httptool.Register(reg, httptool.WithLogger(a.logger)); err != nil {
		return nil, err
	}
	return reg, nil
}
