// Package handler provides HTTP handlers for the dispatch server.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hpn/hpn-llm-router/internal/adapter"
	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/hpn/hpn-llm-router/internal/router"
)

// Dispatcher runs one request through a provider adapter.
// *router.Router satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.Request) (domain.Result, error)
	Providers() []domain.ProviderType
}

// CredentialSource returns a fallback credential for a provider, or "".
type CredentialSource func(provider domain.ProviderType) string

// DispatchHandler exposes the router over HTTP.
type DispatchHandler struct {
	dispatcher  Dispatcher
	credentials CredentialSource
	logger      *slog.Logger
}

// DispatchHandlerOption is a functional option for configuring DispatchHandler.
type DispatchHandlerOption func(*DispatchHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) DispatchHandlerOption {
	return func(h *DispatchHandler) {
		h.logger = logger
	}
}

// WithCredentials sets the fallback used when neither the body nor the
// Authorization header carries a credential.
func WithCredentials(source CredentialSource) DispatchHandlerOption {
	return func(h *DispatchHandler) {
		h.credentials = source
	}
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(dispatcher Dispatcher, opts ...DispatchHandlerOption) *DispatchHandler {
	h := &DispatchHandler{
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// DispatchResponse is the body of a successful POST /v1/dispatch.
type DispatchResponse struct {
	Provider domain.ProviderType `json:"provider"`
	Model    string              `json:"model"`
	Text     string              `json:"text"`
	ToolCall bool                `json:"tool_call,omitempty"`
	Value    any                 `json:"value,omitempty"`
}

// HandleDispatch handles POST /v1/dispatch.
func (h *DispatchHandler) HandleDispatch(c *gin.Context) {
	var req domain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid_request_error", "Invalid request body: "+err.Error(), 0)
		return
	}
	req.Provider = domain.ParseProviderType(string(req.Provider))
	c.Set("provider", string(req.Provider))

	if req.Credential == "" {
		req.Credential = bearerToken(c.GetHeader("Authorization"))
	}
	if req.Credential == "" && h.credentials != nil {
		req.Credential = h.credentials(req.Provider)
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("dispatch failed",
			slog.String("provider", string(req.Provider)),
			slog.String("model", req.Model),
			slog.String("error", err.Error()),
		)
		h.sendDispatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, DispatchResponse{
		Provider: req.Provider,
		Model:    req.Model,
		Text:     result.Text,
		ToolCall: result.ToolCall,
		Value:    result.Value,
	})
}

// sendDispatchError maps the router's error taxonomy onto HTTP statuses.
func (h *DispatchHandler) sendDispatchError(c *gin.Context, err error) {
	if router.IsUnsupportedProviderError(err) {
		sendError(c, http.StatusBadRequest, "unsupported_provider", err.Error(), 0)
		return
	}
	if httpErr, ok := adapter.AsProviderHTTPError(err); ok {
		sendError(c, http.StatusBadGateway, "upstream_error", httpErr.Error(), httpErr.StatusCode)
		return
	}
	if adapter.IsExtractionError(err) {
		sendError(c, http.StatusBadGateway, "invalid_upstream_response", err.Error(), 0)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		sendError(c, http.StatusGatewayTimeout, "upstream_timeout", "Provider did not respond in time", 0)
		return
	}
	sendError(c, http.StatusBadGateway, "upstream_unreachable", "Provider request failed", 0)
}

// HandleProviders handles GET /v1/providers.
func (h *DispatchHandler) HandleProviders(c *gin.Context) {
	providers := h.dispatcher.Providers()
	data := make([]gin.H, len(providers))
	for i, p := range providers {
		data[i] = gin.H{"id": string(p), "object": "provider"}
	}
	c.JSON(http.StatusOK, gin.H{"object": "list", "data": data})
}

// HandleHealth handles GET /health.
func (h *DispatchHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"providers": len(h.dispatcher.Providers()),
	})
}

// sendError sends an error response. upstreamStatus is omitted when zero.
func sendError(c *gin.Context, status int, errType, message string, upstreamStatus int) {
	body := gin.H{
		"message": message,
		"type":    errType,
	}
	if upstreamStatus != 0 {
		body["upstream_status"] = upstreamStatus
	}
	c.JSON(status, gin.H{"error": body})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
