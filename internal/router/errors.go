package router

import (
	"errors"
	"fmt"

	"github.com/hpn/hpn-llm-router/internal/domain"
)

// UnsupportedProviderError is returned when a request names a provider tag
// with no registered adapter. It is raised before any network activity.
type UnsupportedProviderError struct {
	Provider domain.ProviderType
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %q", string(e.Provider))
}

// IsUnsupportedProviderError checks if an error is an UnsupportedProviderError.
func IsUnsupportedProviderError(err error) bool {
	var unsupported *UnsupportedProviderError
	return errors.As(err, &unsupported)
}
