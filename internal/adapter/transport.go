package adapter

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/hpn/hpn-llm-router/internal/security"
)

// Execute sends req and returns the response body of a 2xx answer.
// Any other status becomes a *ProviderHTTPError; nothing is retried.
func Execute(client *http.Client, provider domain.ProviderType, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		// Gemini carries the credential in the query string.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = security.RedactURL(req.URL)
		}
		return nil, fmt.Errorf("execute %s request: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newProviderHTTPError(provider, resp, body)
	}

	return body, nil
}
