// Package model provides helper constructors for structured errors.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// CreateNetworkError classifies a connection-level failure against the server
func CreateNetworkError(err error, endpoint string) *RegistrationError {
	errorType := ErrorTypeNetwork
	message := "Network error occurred"

	if err != nil {
		switch {
		case isRateLimitError(err):
			errorType = ErrorTypeRateLimit
			message = "Request rate limit exceeded"
		case isTimeoutError(err):
			errorType = ErrorTypeTimeout
			message = "Request timed out"
		case isDNSError(err):
			errorType = ErrorTypeDNSResolution
			message = "DNS resolution failed"
		case isConnectionError(err):
			errorType = ErrorTypeConnectionFailed
			message = "Connection failed"
		}
	}

	return NewRegistrationErrorWithCause(errorType, message, err).
		WithURL(endpoint).
		WithComponent("http_client")
}

// CreateHTTPError builds an error from a non-2xx API response. The body is
// consumed as the server's diagnostic: if it parses as a Miniflux error
// envelope the error_message is surfaced, otherwise the raw text is kept.
func CreateHTTPError(resp *http.Response, body []byte, endpoint string) *RegistrationError {
	var errorType ErrorType
	var message string

	status := resp.StatusCode

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		errorType = ErrorTypeAuth
		message = fmt.Sprintf("Authentication failed: %s", resp.Status)
	case status >= 400 && status < 500:
		errorType = ErrorTypeHTTPClientError
		message = fmt.Sprintf("Client error: %s", resp.Status)
	case status >= 500:
		errorType = ErrorTypeHTTPServerError
		message = fmt.Sprintf("Server error: %s", resp.Status)
	default:
		errorType = ErrorTypeHTTP
		message = fmt.Sprintf("HTTP error: %s", resp.Status)
	}

	re := NewRegistrationError(errorType, message).
		WithURL(endpoint).
		WithComponent("http_client").
		WithHTTP(status, string(body))

	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.ErrorMessage != "" {
		re.WithServerDetail(envelope.ErrorMessage)
	}

	return re
}

// CreateDecodeError builds an error for a 2xx response whose body could not
// be decoded into the expected shape.
func CreateDecodeError(err error, endpoint string) *RegistrationError {
	return NewRegistrationErrorWithCause(ErrorTypeAPIResponse, "Failed to decode server response", err).
		WithURL(endpoint).
		WithComponent("http_client")
}

// CreateCategoryNotFoundError builds the error for a failed name lookup,
// listing every title the server reported.
func CreateCategoryNotFoundError(name string, categories []Category) *RegistrationError {
	titles := make([]string, 0, len(categories))
	for _, c := range categories {
		titles = append(titles, c.Title)
	}

	return NewRegistrationError(ErrorTypeCategoryNotFound, fmt.Sprintf("Category %q not found", name)).
		WithOperation("resolve_category").
		WithComponent("category_resolver").
		WithAvailableCategories(titles)
}

// CreateConfigurationError builds an error for missing or invalid
// configuration, detected before any network call.
func CreateConfigurationError(message string) *RegistrationError {
	return NewRegistrationError(ErrorTypeConfiguration, message).
		WithComponent("cli")
}

// CreateParsingError builds an error for a feed that failed to parse in
// verify mode.
func CreateParsingError(err error, feedURL string) *RegistrationError {
	return NewRegistrationErrorWithCause(ErrorTypeParsing, "URL does not resolve to a parseable feed", err).
		WithURL(feedURL).
		WithOperation("verify_feed").
		WithComponent("feed_parser")
}

// CreateDiscoveryError builds an error for a page that advertises no feed.
func CreateDiscoveryError(err error, pageURL string) *RegistrationError {
	re := NewRegistrationError(ErrorTypeDiscovery, "No feed discovered on page")
	re.Cause = err
	return re.
		WithURL(pageURL).
		WithOperation("discover_feed").
		WithComponent("feed_discoverer")
}

// CreateValidationError maps a URL validation failure to a structured error
func CreateValidationError(err error, rawURL string) *RegistrationError {
	errorType := ErrorTypeValidation
	message := "URL validation failed"

	switch {
	case errors.Is(err, ErrUnsupportedScheme):
		errorType = ErrorTypeUnsupportedScheme
		message = "Unsupported URL scheme"
	case errors.Is(err, ErrPrivateIPBlocked):
		errorType = ErrorTypePrivateIP
		message = "Private IP address blocked"
	case errors.Is(err, ErrMissingHost):
		errorType = ErrorTypeInvalidURL
		message = "URL missing host"
	case errors.Is(err, ErrEmptyURL):
		errorType = ErrorTypeInvalidURL
		message = "URL cannot be empty"
	case errors.Is(err, ErrInvalidURL):
		errorType = ErrorTypeInvalidURL
		message = "Invalid URL format"
	}

	return NewRegistrationErrorWithCause(errorType, message, err).
		WithURL(rawURL).
		WithOperation("validate_url").
		WithComponent("url_validator")
}

// CreateCircuitBreakerError builds an error for a rejected call while the
// breaker is open.
func CreateCircuitBreakerError(endpoint string, state string) *RegistrationError {
	return NewRegistrationError(ErrorTypeCircuitBreaker, fmt.Sprintf("Circuit breaker is %s", state)).
		WithURL(endpoint).
		WithComponent("circuit_breaker")
}

// isRateLimitError checks if the error came from the client-side rate
// limiter. x/time/rate reports Wait failures as "rate: Wait(n=...)" errors,
// which surface through the transport wrapped in a *url.Error.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "rate: wait")
}

// isTimeoutError checks if the error is related to timeouts
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, keyword := range []string{"timeout", "deadline exceeded", "timed out"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}

// isDNSError checks if the error is related to DNS resolution
func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, keyword := range []string{
		"no such host", "dns", "name resolution",
		"name or service not known", "nodename nor servname provided",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}

// isConnectionError checks if the error is related to connection issues
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	for _, errno := range []syscall.Errno{
		syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ECONNABORTED,
		syscall.EHOSTUNREACH, syscall.ENETUNREACH,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, keyword := range []string{
		"connection refused", "connection reset", "connection aborted",
		"host unreachable", "network unreachable", "no route to host",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}
