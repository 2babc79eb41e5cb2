package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestMaskKeyShort(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"short", "***"},
		{"sk-or-v1-abcdef123456", "sk-o...3456"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := maskKeyShort(tt.input); got != tt.expected {
				t.Errorf("maskKeyShort(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestErrorMessageMasksCredentials(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		excludes string
	}{
		{
			name:     "gemini query key",
			err:      errors.New(`execute gemini request: Post "http://127.0.0.1:1/models/m:generateContent?key=MY-SECRET-GEMINI-KEY": connection refused`),
			excludes: "MY-SECRET-GEMINI-KEY",
		},
		{
			name:     "bearer token",
			err:      errors.New("upstream rejected Bearer sk-or-v1-abcdefghijklmnopqrstuvwxyz"),
			excludes: "abcdefghijklmnopqrstuvwxyz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			if strings.Contains(got, tt.excludes) {
				t.Errorf("errorMessage() = %q, should NOT contain %q", got, tt.excludes)
			}
			if !strings.Contains(got, "[REDACTED]") {
				t.Errorf("errorMessage() = %q, should contain placeholder", got)
			}
		})
	}
}
