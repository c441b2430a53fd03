// Package httptool provides the http_request tool, which lets a model send
// HTTP requests to the key-rates API.
package httptool

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/keyrates/toolschema/middleware"
	"github.com/keyrates/toolschema/schema"
	"github.com/keyrates/toolschema/tool"
)

// Name is the tool name.
const Name = "http_request"

// Methods are the HTTP verbs the tool accepts.
var Methods = []string{
	http.MethodConnect,
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
	http.MethodTrace,
}

// Request is the decoded tool input.
type Request struct {
	Method string         `json:"method"`
	URL    string         `json:"url"`
	Data   map[string]any `json:"data"`
}

// Response is the tool result. Status is 0 when the request could not be
// sent; Body then holds the transport error.
type Response struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// Option configures the tool.
type Option func(*requester)

// WithHTTPClient sets the client used to send requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *requester) { r.client = c }
}

// WithLogger sets the logger.
func WithLogger(l middleware.Logger) Option {
	return func(r *requester) { r.logger = l }
}

// WithMaxBody caps the number of response bytes returned to the model.
func WithMaxBody(n int64) Option {
	return func(r *requester) { r.maxBody = n }
}

type requester struct {
	client  *http.Client
	logger  middleware.Logger
	maxBody int64
}

// Params returns the tool's parameter declarations.
func Params() []tool.Param {
	return []tool.Param{
		tool.P("method", schema.Enum("HTTPMethod", Methods...), schema.Describe("HTTP request method")),
		tool.P("url", schema.String(), schema.Describe("URL of the server the HTTP request is sent to")),
		tool.P("data", schema.Nullable(schema.Object()), schema.Describe("Data sent in the request body")),
	}
}

// Builder returns a builder for the tool, ready to Build or register.
func Builder(b *tool.Builder, opts ...Option) *tool.Builder {
	r := &requester{
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  &middleware.NopLogger{},
		maxBody: 1 << 20,
	}
	for _, opt := range opts {
		opt(r)
	}
	return b.
		Description("Perform an HTTP request").
		Params(Params()...).
		ValidateInput().
		Handler(r.do)
}

// New builds the tool.
func New(opts ...Option) (*tool.Tool, error) {
	return Builder(tool.New(Name), opts...).Build()
}

// Register builds the tool and adds it to reg.
func Register(reg *tool.Registry, opts ...Option) (*tool.Tool, error) {
	return Builder(reg.Tool(Name), opts...).Build()
}

func (r *requester) do(ctx context.Context, req Request) (Response, error) {
	r.logger.Info("http request", middleware.F("method", req.Method), middleware.F("url", req.URL))

	var body io.Reader
	if req.Data != nil {
		data, err := json.Marshal(req.Data)
		if err != nil {
			return Response{Body: err.Error()}, nil
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Response{Body: err.Error()}, nil
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		r.logger.Warn("http request failed", middleware.F("url", req.URL), middleware.F("error", err.Error()))
		return Response{Body: err.Error()}, nil
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBody))
	if err != nil {
		return Response{Status: resp.StatusCode, Body: err.Error()}, nil
	}
	return Response{Status: resp.StatusCode, Body: string(text)}, nil
}
