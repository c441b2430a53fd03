// Package fragments fetches the remote key-rates API's reference documents and
// renders them into the system prompt that accompanies the tool schemas.
package fragments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"

	"github.com/keyrates/toolschema/middleware"
)

// ErrThrottled is returned when a fetch would exceed the provider's rate.
var ErrThrottled = errors.New("fragments: fetch rate limit exceeded")

// Fragment keys.
const (
	KeyOpenAPI    = "openapi"
	KeyAttributes = "attributes"
	KeyNames      = "names"
)

// Fragments are the documents a prompt is rendered from.
type Fragments struct {
	OpenAPI    string
	ServerURL  string
	Attributes string
	Names      string
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient sets the client used for fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// WithLogger sets the logger.
func WithLogger(l middleware.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// WithRate limits fetches to rate per second with the given burst.
func WithRate(rate, burst int) Option {
	return func(p *Provider) { p.rate, p.burst = rate, burst }
}

// WithTemplate replaces the prompt template. The template is executed with a
// Fragments value.
func WithTemplate(tmpl *template.Template) Option {
	return func(p *Provider) { p.tmpl = tmpl }
}

// Provider fetches and memoises prompt fragments. Only successful fetches are
// memoised; a failure is retried on the next request.
type Provider struct {
	baseURL  string
	attrsURL string
	namesURL string

	client  *http.Client
	logger  middleware.Logger
	tmpl    *template.Template
	allow   func(ctx context.Context, key string) bool
	rate    int
	burst   int

	mu    sync.Mutex
	cache map[string]string
}

// NewProvider creates a provider for the API at baseURL. The OpenAPI document
// is read from <baseURL>/openapi.json.
func NewProvider(baseURL, attrsURL, namesURL string, opts ...Option) *Provider {
	p := &Provider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		attrsURL: strings.TrimRight(attrsURL, "/"),
		namesURL: strings.TrimRight(namesURL, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   &middleware.NopLogger{},
		tmpl:     defaultTemplate,
		rate:     5,
		burst:    5,
		cache:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	limiter := ratelimit.New(&ratelimit.Config{
		Rate:     p.rate,
		Burst:    p.burst,
		Interval: time.Second,
	})
	p.allow = limiter.Allow
	return p
}

// OpenAPI returns the API's OpenAPI document.
func (p *Provider) OpenAPI(ctx context.Context) (string, error) {
	return p.get(ctx, KeyOpenAPI, p.baseURL+"/openapi.json")
}

// Attributes returns the list of permitted record attributes.
func (p *Provider) Attributes(ctx context.Context) (string, error) {
	return p.get(ctx, KeyAttributes, p.attrsURL)
}

// Names returns the list of permitted document names.
func (p *Provider) Names(ctx context.Context) (string, error) {
	return p.get(ctx, KeyNames, p.namesURL)
}

// Fetch returns all fragments, failing on the first one that cannot be read.
func (p *Provider) Fetch(ctx context.Context) (*Fragments, error) {
	openapi, err := p.OpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	attrs, err := p.Attributes(ctx)
	if err != nil {
		return nil, err
	}
	names, err := p.Names(ctx)
	if err != nil {
		return nil, err
	}
	return &Fragments{
		OpenAPI:    openapi,
		ServerURL:  p.baseURL,
		Attributes: attrs,
		Names:      names,
	}, nil
}

// Prompt fetches the fragments and renders the system prompt.
func (p *Provider) Prompt(ctx context.Context) (string, error) {
	f, err := p.Fetch(ctx)
	if err != nil {
		return "", err
	}
	return Render(p.tmpl, f)
}

// Render executes tmpl with f.
func Render(tmpl *template.Template, f *Fragments) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, f); err != nil {
		return "", fmt.Errorf("fragments: render prompt: %w", err)
	}
	return b.String(), nil
}

// Reset drops every memoised fragment.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.cache)
}

func (p *Provider) get(ctx context.Context, key, url string) (string, error) {
	p.mu.Lock()
	if v, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return v, nil
	}
	p.mu.Unlock()

	if !p.allow(ctx, "fetch") {
		p.logger.Warn("fragment fetch throttled", middleware.F("fragment", key))
		return "", ErrThrottled
	}

	body, err := p.fetch(ctx, url)
	if err != nil {
		p.logger.Error("fragment fetch failed",
			middleware.F("fragment", key),
			middleware.F("url", url),
			middleware.F("error", err.Error()),
		)
		return "", fmt.Errorf("fragments: fetch %s: %w", key, err)
	}

	p.mu.Lock()
	p.cache[key] = body
	p.mu.Unlock()

	p.logger.Debug("fragment fetched",
		middleware.F("fragment", key),
		middleware.F("bytes", len(body)),
	)
	return body, nil
}

func (p *Provider) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if len(body) == 0 {
		return "", errors.New("empty response")
	}
	return string(body), nil
}
