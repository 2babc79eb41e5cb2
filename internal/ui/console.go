// Package ui provides colorized console output for the CLI and server.
package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/hpn/hpn-llm-router/internal/adapter"
	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/hpn/hpn-llm-router/internal/security"
)

var (
	// Badge colors
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)

	// Text colors
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	infoText    = color.New(color.FgCyan)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)
	neonBlue    = color.New(color.FgHiCyan, color.Bold)

	methodPOST = color.New(color.BgHiMagenta, color.FgBlack, color.Bold)
	methodGET  = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
)

// ══════════════════════════════════════════════════════════════════════════════
// DISPATCH OUTPUT
// ══════════════════════════════════════════════════════════════════════════════

// PrintResult prints a dispatch result followed by a muted footer line.
// Format:
//
//	Paris
//	[openai] gpt-4o-mini · 412ms
func PrintResult(provider domain.ProviderType, model string, result domain.Result, latency time.Duration) {
	switch {
	case result.ToolCall:
		accentText.Print("[TOOL] ")
		fmt.Println(result.String())
	case result.IsEmpty():
		warningText.Println("(empty response)")
	default:
		fmt.Println(result.Text)
	}

	mutedText.Printf("[%s] %s · ", provider, model)
	printLatency(latency)
	fmt.Println()
}

// PrintError prints a dispatch failure. Provider status errors get a status badge.
func PrintError(err error) {
	if httpErr, ok := adapter.AsProviderHTTPError(err); ok {
		printStatusBadge(httpErr.StatusCode)
		fmt.Print(" ")
		errorText.Printf("%s: %s\n", httpErr.Provider, httpErr.StatusText)
		return
	}
	errorBadge.Print(" ERROR ")
	fmt.Print(" ")
	errorText.Println(errorMessage(err))
}

// errorMessage renders err with any credential masked.
func errorMessage(err error) string {
	return security.Redact(err.Error())
}

// ProviderInfo describes one registered provider for display.
type ProviderInfo struct {
	Provider   domain.ProviderType
	Endpoint   string
	Credential string
}

// PrintProviders prints a table of providers, their endpoints and whether a
// fallback credential is configured.
func PrintProviders(providers []ProviderInfo) {
	for _, p := range providers {
		infoBadge.Printf("%-12s", p.Provider)
		fmt.Printf(" %-60s ", p.Endpoint)
		if p.Credential == "" {
			mutedText.Println("credential: not set")
			continue
		}
		successText.Printf("credential: %s\n", maskKeyShort(p.Credential))
	}
}

// printStatusBadge prints the status code with appropriate color.
func printStatusBadge(status int) {
	switch {
	case status >= 200 && status < 300:
		successBadge.Printf(" %d ", status)
	case status >= 300 && status < 400:
		infoBadge.Printf(" %d ", status)
	case status >= 400 && status < 500:
		warningBadge.Printf(" %d ", status)
	default:
		errorBadge.Printf(" %d ", status)
	}
}

// printLatency prints latency with color gradient.
// Green: < 1s, Yellow: < 5s, Red: >= 5s
func printLatency(latency time.Duration) {
	ms := latency.Milliseconds()
	latencyStr := fmt.Sprintf("%dms", ms)

	switch {
	case ms < 1000:
		successText.Print(latencyStr)
	case ms < 5000:
		warningText.Print(latencyStr)
	default:
		errorText.Print(latencyStr)
	}
}

// maskKeyShort returns a short masked version of an API key.
// Format: xxxx...xxxx
func maskKeyShort(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// PrintStartupInfo prints styled server startup information.
func PrintStartupInfo(host string, port int, providers []domain.ProviderType, metricsEnabled bool) {
	fmt.Println()
	infoBadge.Print("[ROUTER]")
	fmt.Print(" Server starting on ")
	neonBlue.Printf("http://%s:%d\n", host, port)

	infoBadge.Print("[ROUTER]")
	fmt.Print(" Providers: ")
	for i, p := range providers {
		if i > 0 {
			mutedText.Print(", ")
		}
		accentText.Print(string(p))
	}
	fmt.Println()
	fmt.Println()

	printEndpoint(methodPOST, "POST", "/v1/dispatch", "Dispatch one request to a provider")
	printEndpoint(methodGET, "GET ", "/v1/providers", "List supported providers")
	printEndpoint(methodGET, "GET ", "/health", "Health check")
	if metricsEnabled {
		printEndpoint(methodGET, "GET ", "/metrics", "Prometheus metrics")
	}
	fmt.Println()
}

func printEndpoint(badge *color.Color, method, path, desc string) {
	mutedText.Print("  ")
	badge.Printf(" %s ", method)
	fmt.Printf(" %-16s ", path)
	mutedText.Println(desc)
}

// PrintShutdown prints a styled shutdown message.
func PrintShutdown() {
	fmt.Println()
	warningBadge.Print("[SHUTDOWN]")
	warningText.Println(" Graceful shutdown initiated...")
}

// PrintGoodbye prints a styled goodbye message.
func PrintGoodbye() {
	successBadge.Print(" OK ")
	fmt.Print(" ")
	successText.Println("Server stopped.")
}

// PrintInfo prints a general informational line.
func PrintInfo(msg string) {
	infoBadge.Print("[ROUTER]")
	fmt.Print(" ")
	infoText.Println(msg)
}
