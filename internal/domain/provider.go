// Package domain contains the core business entities and value objects.
// These structs are framework-agnostic and represent the heart of the application.
package domain

import (
	"sort"
	"strings"
)

// ProviderType is the tag that selects which provider adapter handles a request.
type ProviderType string

const (
	// ProviderOpenAI speaks the OpenAI chat completions protocol with a raw
	// credential in the Authorization header.
	ProviderOpenAI ProviderType = "openai"

	// ProviderGemini speaks the Gemini generateContent protocol with the
	// credential passed as a query parameter.
	ProviderGemini ProviderType = "gemini"

	// ProviderOpenRouter speaks the OpenAI chat completions protocol with a
	// bearer credential.
	ProviderOpenRouter ProviderType = "openrouter"
)

// KnownProviders returns every provider tag the router understands, sorted.
func KnownProviders() []ProviderType {
	known := []ProviderType{ProviderOpenAI, ProviderGemini, ProviderOpenRouter}
	sort.Slice(known, func(i, j int) bool { return known[i] < known[j] })
	return known
}

// ParseProviderType normalizes a user-supplied tag.
// Unknown tags are returned as-is so the router can reject them with a typed error.
func ParseProviderType(s string) ProviderType {
	return ProviderType(strings.ToLower(strings.TrimSpace(s)))
}

// IsKnown reports whether p is one of the supported provider tags.
func (p ProviderType) IsKnown() bool {
	switch p {
	case ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		return true
	default:
		return false
	}
}

func (p ProviderType) String() string {
	return string(p)
}
