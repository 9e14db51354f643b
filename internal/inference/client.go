package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

// Client is the boundary to the external structured-inference service.
// Implementations perform the network call and nothing else: no persistence,
// no state beyond the call itself.
type Client interface {
	// Invoke sends the request and returns the parsed result. A request
	// carrying a schema yields JSON validated against that contract; a
	// schema-less request yields free text.
	Invoke(ctx context.Context, req Request) (*Result, error)

	// ModelID returns the model identifier this client is configured to use.
	ModelID() string
}

// Request describes one inference call. Immutable once issued.
type Request struct {
	// Prompt is the full instruction text. Must be non-empty.
	Prompt string

	// Artifacts are stable URLs of input files (at most one image for the
	// current use cases), produced by a prior upload step.
	Artifacts []string

	// AllowExternalContext lets the service ground the response with live
	// external data (web search).
	AllowExternalContext bool

	// Schema is the response contract. Nil means raw text passthrough.
	Schema *Schema
}

// Result holds the service's answer. Only the Client creates these.
type Result struct {
	// Content is the raw payload: validated JSON when the request carried
	// a schema, the response text otherwise.
	Content json.RawMessage

	// Model is the model that actually served the call.
	Model string

	// Usage reports token consumption.
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Text returns the result as free text. For schema-less calls Content is
// the text itself.
func (r *Result) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Decode unmarshals a structured result into v. Callers pass structs whose
// fields are all pointers or slices: a field the service omitted stays nil.
func (r *Result) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return MalformedResponse(fmt.Errorf("decode result: %w", err))
	}
	return nil
}

// ── Configuration ───────────────────────────────────────

type Config struct {
	Provider        string // "gemini", "anthropic" or "mock"
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	TimeoutMs       int
	MaxAttempts     int
}

// New builds a Client from configuration, wrapped with the per-call timeout
// and transient-failure retry.
func New(ctx context.Context, cfg Config) (Client, error) {
	var base Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		base, err = NewGeminiClient(ctx, cfg)
	case "anthropic":
		base, err = NewAnthropicClient(cfg)
	case "mock":
		base = NewMockClient()
	default:
		return nil, fmt.Errorf("unknown inference provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s client: %w", cfg.Provider, err)
	}

	log.Printf("Inference using %s (model %s)", cfg.Provider, base.ModelID())

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 2
	}

	return withRetry(withTimeout(base, timeout), attempts), nil
}

// ── Timeout decorator ───────────────────────────────────

// timeoutClient aborts in-flight calls after a fixed deadline and reports
// the abort as ServiceUnavailable.
type timeoutClient struct {
	inner   Client
	timeout time.Duration
}

func withTimeout(c Client, d time.Duration) Client {
	return &timeoutClient{inner: c, timeout: d}
}

func (t *timeoutClient) Invoke(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	res, err := t.inner.Invoke(ctx, req)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return nil, ServiceUnavailable(fmt.Errorf("call timed out after %s", t.timeout))
	}
	return res, err
}

func (t *timeoutClient) ModelID() string { return t.inner.ModelID() }
