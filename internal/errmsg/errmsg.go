// Package errmsg provides enhanced error message formatting with actionable suggestions.
package errmsg

import (
	"errors"
	"net"
	"strings"
)

// ErrorContext provides additional context for error formatting
type ErrorContext struct {
	Provider string // The LLM provider in use (for suggestions)
}

// Format returns a formatted error message with possible causes and suggestions.
// The context parameter is optional - pass nil for generic formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	// Check for rate limit errors (string matching for unstructured errors)
	if isRateLimitError(errMsg) {
		return formatRateLimitError(errMsg)
	}

	// Check for authentication errors
	if isAuthError(errMsg) {
		return formatAuthError(errMsg, ctx)
	}

	// Check for network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		return formatNetworkError(netErr, ctx)
	}

	// Check for connection-related errors by message
	if isNetworkError(errMsg) {
		return formatGenericNetworkError(errMsg, ctx)
	}

	// Return original error for unrecognized types
	return errMsg
}

func formatRateLimitError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Provider API rate limit exceeded\n")
	sb.WriteString("  - Too many requests in a short period\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Wait a few minutes and try again\n")
	sb.WriteString("  - Switch to a local model: gumshoe config set provider ollama\n")

	return sb.String()
}

func formatAuthError(errMsg string, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Missing or invalid API key\n")
	sb.WriteString("  - The key does not have access to the configured model\n")

	sb.WriteString("\nSuggestions:\n")
	switch providerName(ctx) {
	case "claude":
		sb.WriteString("  - Set ANTHROPIC_API_KEY in your environment\n")
	case "gemini":
		sb.WriteString("  - Set GOOGLE_API_KEY or GEMINI_API_KEY in your environment\n")
	default:
		sb.WriteString("  - Check the API key environment variable for your provider\n")
	}
	sb.WriteString("  - Run 'gumshoe config get provider' to see which provider is active\n")

	return sb.String()
}

func formatNetworkError(err net.Error, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	if err.Timeout() {
		sb.WriteString("  - Request timed out\n")
		sb.WriteString("  - Slow network connection\n")
		sb.WriteString("  - Service is responding slowly\n")
	} else {
		sb.WriteString("  - Network connectivity issue\n")
		sb.WriteString("  - Service temporarily unavailable\n")
	}

	sb.WriteString(networkSuggestions(ctx))
	return sb.String()
}

func formatGenericNetworkError(errMsg string, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Network connectivity issue\n")
	sb.WriteString("  - Service temporarily unavailable\n")

	sb.WriteString(networkSuggestions(ctx))
	return sb.String()
}

func networkSuggestions(ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check your internet connection\n")
	if providerName(ctx) == "ollama" {
		sb.WriteString("  - Make sure Ollama is running: ollama serve\n")
		sb.WriteString("  - Run 'gumshoe config get ollama_url' to verify the endpoint\n")
	}
	sb.WriteString("  - Try again in a few minutes\n")
	return sb.String()
}

func providerName(ctx *ErrorContext) string {
	if ctx == nil {
		return ""
	}
	return ctx.Provider
}

func isRateLimitError(errMsg string) bool {
	lower := strings.ToLower(errMsg)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "too many requests") ||
		strings.Contains(lower, "429")
}

func isAuthError(errMsg string) bool {
	lower := strings.ToLower(errMsg)
	return strings.Contains(lower, "api key") ||
		strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "401") ||
		strings.Contains(lower, "403")
}

func isNetworkError(errMsg string) bool {
	lower := strings.ToLower(errMsg)
	return strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "deadline exceeded")
}
