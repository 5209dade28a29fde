package fetcher

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// statusText gives a short operator-facing reason for an HTTP status.
func statusText(code int) string {
	switch code {
	case 401, 403:
		return "access denied by the fact endpoint"
	case 404:
		return "fact endpoint not found (check the URL)"
	case 429:
		return "rate limited, too many requests"
	case 500:
		return "internal server error on the fact endpoint"
	case 502, 503:
		return "fact endpoint temporarily unavailable"
	}
	if t := http.StatusText(code); t != "" {
		return strings.ToLower(t)
	}
	return "unexpected status"
}

// FriendlyError converts common network errors to user-friendly messages.
func FriendlyError(err error) string {
	if err == nil {
		return "unknown error"
	}
	msg := err.Error()
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
		return "connection timed out"
	}
	if strings.Contains(msg, "connection refused") {
		return "connection refused (is the service running?)"
	}
	if strings.Contains(msg, "no such host") {
		return "host not found (check the URL)"
	}
	if strings.Contains(msg, "reset by peer") {
		return "connection reset by server"
	}
	if strings.Contains(msg, "EOF") {
		return "connection closed unexpectedly"
	}
	return msg
}
