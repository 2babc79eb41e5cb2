package adapter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hpn/hpn-llm-router/internal/domain"
)

// ProviderHTTPError is returned when a provider answers with a non-success status.
type ProviderHTTPError struct {
	Provider   domain.ProviderType
	StatusCode int
	StatusText string
	Body       []byte
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("%s API error [%d]: %s", e.Provider, e.StatusCode, e.StatusText)
}

// newProviderHTTPError builds the error from a response, falling back to the
// canonical status text when the server sent a bare code.
func newProviderHTTPError(provider domain.ProviderType, resp *http.Response, body []byte) *ProviderHTTPError {
	text := http.StatusText(resp.StatusCode)
	if len(resp.Status) > 4 {
		text = resp.Status[4:]
	}
	return &ProviderHTTPError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		StatusText: text,
		Body:       body,
	}
}

// ExtractionError is returned when a successful response lacks a field the
// adapter needs. Responses are never silently degraded.
type ExtractionError struct {
	Provider domain.ProviderType
	Field    string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s response: %s: %v", e.Provider, e.Field, e.Err)
	}
	return fmt.Sprintf("%s response: missing %s", e.Provider, e.Field)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// AsProviderHTTPError returns the ProviderHTTPError wrapped in err, if any.
func AsProviderHTTPError(err error) (*ProviderHTTPError, bool) {
	var httpErr *ProviderHTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsExtractionError checks if an error is an ExtractionError.
func IsExtractionError(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr)
}
