// Package router selects a provider adapter by tag and runs one
// request/response cycle through it.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/hpn/hpn-llm-router/internal/adapter"
	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/hpn/hpn-llm-router/internal/metrics"
	"github.com/hpn/hpn-llm-router/internal/security"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Router dispatches requests to provider adapters.
// It holds no per-call state and is safe for concurrent use.
type Router struct {
	adapters   map[domain.ProviderType]adapter.Adapter
	httpClient *http.Client
	logger     *slog.Logger
	recorder   metrics.Recorder
}

// Option is a functional option for configuring Router.
type Option func(*Router)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Router) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables the timeout.
// The client is copied so one passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Router) {
		client := *r.httpClient
		client.Timeout = timeout
		r.httpClient = &client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(r *Router) {
		if recorder != nil {
			r.recorder = recorder
		}
	}
}

// WithAdapter registers a, replacing any adapter already serving its tag.
func WithAdapter(a adapter.Adapter) Option {
	return func(r *Router) {
		r.adapters[a.Name()] = a
	}
}

// WithBaseURL points one of the built-in providers at a different base URL.
// Empty URLs keep the provider default. Unknown tags are ignored.
func WithBaseURL(provider domain.ProviderType, baseURL string) Option {
	return func(r *Router) {
		opt := adapter.WithBaseURL(baseURL)
		switch provider {
		case domain.ProviderOpenAI:
			r.adapters[provider] = adapter.NewOpenAIAdapter(opt)
		case domain.ProviderGemini:
			r.adapters[provider] = adapter.NewGeminiAdapter(opt)
		case domain.ProviderOpenRouter:
			r.adapters[provider] = adapter.NewOpenRouterAdapter(opt)
		}
	}
}

// New creates a Router with the OpenAI, Gemini and OpenRouter adapters registered.
func New(opts ...Option) *Router {
	r := &Router{
		adapters: map[domain.ProviderType]adapter.Adapter{
			domain.ProviderOpenAI:     adapter.NewOpenAIAdapter(),
			domain.ProviderGemini:     adapter.NewGeminiAdapter(),
			domain.ProviderOpenRouter: adapter.NewOpenRouterAdapter(),
		},
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Providers returns the registered provider tags, sorted.
func (r *Router) Providers() []domain.ProviderType {
	tags := make([]domain.ProviderType, 0, len(r.adapters))
	for tag := range r.adapters {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Dispatch selects the adapter for req.Provider, issues exactly one HTTP
// call and returns the adapter's normalized result.
// Unknown providers fail with *UnsupportedProviderError before any I/O.
// Non-2xx responses fail with *adapter.ProviderHTTPError. Nothing is retried.
func (r *Router) Dispatch(ctx context.Context, req domain.Request) (domain.Result, error) {
	start := time.Now()

	a, ok := r.adapters[req.Provider]
	if !ok {
		r.recorder.ObserveDispatch("unknown", metrics.OutcomeUnsupported, time.Since(start))
		return domain.Result{}, &UnsupportedProviderError{Provider: req.Provider}
	}
	provider := a.Name()

	httpReq, err := a.BuildRequest(ctx, req)
	if err != nil {
		r.recorder.ObserveDispatch(string(provider), metrics.OutcomeTransportError, time.Since(start))
		return domain.Result{}, fmt.Errorf("build %s request: %w", provider, err)
	}

	r.logger.Debug("dispatching request",
		slog.String("provider", string(provider)),
		slog.String("model", req.Model),
		slog.String("endpoint", security.RedactURL(httpReq.URL)),
		slog.Int("messages", len(req.Messages)),
	)

	body, err := adapter.Execute(r.httpClient, provider, httpReq)
	if err != nil {
		outcome := metrics.OutcomeTransportError
		if httpErr, ok := adapter.AsProviderHTTPError(err); ok {
			outcome = metrics.OutcomeHTTPError
			r.logger.Warn("provider returned error status",
				slog.String("provider", string(provider)),
				slog.Int("status", httpErr.StatusCode),
				slog.Duration("latency", time.Since(start)),
			)
		} else {
			r.logger.Warn("provider request failed",
				slog.String("provider", string(provider)),
				slog.String("error", security.Redact(err.Error())),
			)
		}
		r.recorder.ObserveDispatch(string(provider), outcome, time.Since(start))
		return domain.Result{}, err
	}

	result, err := a.ExtractResult(body)
	if err != nil {
		r.logger.Warn("unexpected provider response",
			slog.String("provider", string(provider)),
			slog.String("error", err.Error()),
		)
		r.recorder.ObserveDispatch(string(provider), metrics.OutcomeExtractionError, time.Since(start))
		return domain.Result{}, err
	}

	r.recorder.ObserveDispatch(string(provider), metrics.OutcomeSuccess, time.Since(start))
	r.logger.Debug("request successful",
		slog.String("provider", string(provider)),
		slog.Bool("tool_call", result.ToolCall),
		slog.Duration("latency", time.Since(start)),
	)

	return result, nil
}
