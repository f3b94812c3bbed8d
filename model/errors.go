// Package model defines data structures and error types for the feed registrar.
package model

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrorType represents different categories of errors that can occur
type ErrorType string

const (
	// ErrorTypeNetwork represents general network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeTimeout represents request timeout errors
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeConnectionFailed represents connection establishment failures
	ErrorTypeConnectionFailed ErrorType = "connection_failed"
	// ErrorTypeDNSResolution represents DNS resolution failures
	ErrorTypeDNSResolution ErrorType = "dns_resolution"

	// ErrorTypeHTTP represents general HTTP errors
	ErrorTypeHTTP ErrorType = "http"
	// ErrorTypeAuth represents 401/403 responses from the server
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeHTTPClientError represents HTTP 4xx client errors
	ErrorTypeHTTPClientError ErrorType = "http_client_error" // 4xx
	// ErrorTypeHTTPServerError represents HTTP 5xx server errors
	ErrorTypeHTTPServerError ErrorType = "http_server_error" // 5xx

	// ErrorTypeAPIResponse represents an undecodable body on a 2xx response
	ErrorTypeAPIResponse ErrorType = "api_response"
	// ErrorTypeCategoryNotFound represents a failed category name lookup
	ErrorTypeCategoryNotFound ErrorType = "category_not_found"

	// ErrorTypeParsing represents feed parsing errors in verify mode
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeDiscovery represents failed feed autodiscovery on an HTML page
	ErrorTypeDiscovery ErrorType = "discovery"

	// ErrorTypeValidation represents URL validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInvalidURL represents invalid URL format errors
	ErrorTypeInvalidURL ErrorType = "invalid_url"
	// ErrorTypeUnsupportedScheme represents unsupported URL scheme errors
	ErrorTypeUnsupportedScheme ErrorType = "unsupported_scheme"
	// ErrorTypePrivateIP represents private IP address blocked errors
	ErrorTypePrivateIP ErrorType = "private_ip_blocked"

	// ErrorTypeConfiguration represents missing or invalid configuration
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeCircuitBreaker represents circuit breaker state errors
	ErrorTypeCircuitBreaker ErrorType = "circuit_breaker"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeInternal represents internal errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeUnknown represents unknown or unclassified errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// RegistrationError is a structured error carrying context about a failed
// interaction with the Miniflux server.
type RegistrationError struct {
	ID         string    `json:"id"`         // Unique correlation ID for tracking
	Timestamp  time.Time `json:"timestamp"`  // When the error occurred
	ErrorType  ErrorType `json:"error_type"` // Category of error
	Message    string    `json:"message"`    // Human-readable error message
	Suggestion string    `json:"suggestion"` // Actionable suggestion for resolution

	URL       string `json:"url,omitempty"`       // Endpoint or feed URL involved
	Operation string `json:"operation,omitempty"` // What operation was being performed
	Component string `json:"component,omitempty"` // Which component generated the error

	// HTTP context for non-2xx responses
	HTTPStatus   int    `json:"http_status,omitempty"`   // HTTP status code
	ResponseBody string `json:"response_body,omitempty"` // Raw response body (truncated)
	ServerDetail string `json:"server_detail,omitempty"` // Parsed error_message, if the body was JSON

	// Lookup context for category resolution failures
	AvailableCategories []string `json:"available_categories,omitempty"`

	Cause error `json:"-"` // Original error (not serialized to JSON)
}

// Error implements the error interface
func (re *RegistrationError) Error() string {
	var parts []string

	if re.Message != "" {
		parts = append(parts, re.Message)
	}
	if re.URL != "" {
		parts = append(parts, fmt.Sprintf("URL: %s", re.URL))
	}
	if re.Operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", re.Operation))
	}
	if re.HTTPStatus != 0 {
		parts = append(parts, fmt.Sprintf("HTTP Status: %d", re.HTTPStatus))
	}
	if re.ServerDetail != "" {
		parts = append(parts, fmt.Sprintf("Server: %s", re.ServerDetail))
	} else if re.ResponseBody != "" {
		parts = append(parts, fmt.Sprintf("Response: %s", re.ResponseBody))
	}
	if len(re.AvailableCategories) > 0 {
		parts = append(parts, fmt.Sprintf("Available categories: %s", strings.Join(re.AvailableCategories, ", ")))
	}
	parts = append(parts, fmt.Sprintf("Type: %s", re.ErrorType), fmt.Sprintf("ID: %s", re.ID))

	return strings.Join(parts, " | ")
}

// Unwrap returns the underlying cause for error wrapping support
func (re *RegistrationError) Unwrap() error {
	return re.Cause
}

// NewRegistrationError creates a new RegistrationError with basic information
func NewRegistrationError(errorType ErrorType, message string) *RegistrationError {
	id, _ := gonanoid.New() // Generate unique correlation ID

	return &RegistrationError{
		ID:         id,
		Timestamp:  time.Now().UTC(),
		ErrorType:  errorType,
		Message:    message,
		Suggestion: getSuggestionForErrorType(errorType),
	}
}

// NewRegistrationErrorWithCause creates a new RegistrationError wrapping an existing error
func NewRegistrationErrorWithCause(errorType ErrorType, message string, cause error) *RegistrationError {
	re := NewRegistrationError(errorType, message)
	re.Cause = cause
	return re
}

// WithURL adds URL context to the error
func (re *RegistrationError) WithURL(url string) *RegistrationError {
	re.URL = url
	return re
}

// WithOperation adds operation context to the error
func (re *RegistrationError) WithOperation(operation string) *RegistrationError {
	re.Operation = operation
	return re
}

// WithComponent adds component context to the error
func (re *RegistrationError) WithComponent(component string) *RegistrationError {
	re.Component = component
	return re
}

// WithHTTP adds the response status and body to the error. The body is
// truncated to keep error output readable.
func (re *RegistrationError) WithHTTP(status int, body string) *RegistrationError {
	const maxBody = 512

	re.HTTPStatus = status
	if len(body) > maxBody {
		body = body[:maxBody] + "..."
	}
	re.ResponseBody = strings.TrimSpace(body)
	return re
}

// WithServerDetail adds the server's parsed error message
func (re *RegistrationError) WithServerDetail(detail string) *RegistrationError {
	re.ServerDetail = detail
	return re
}

// WithAvailableCategories records the category titles the server reported,
// for diagnostic display on a failed name lookup.
func (re *RegistrationError) WithAvailableCategories(titles []string) *RegistrationError {
	re.AvailableCategories = titles
	return re
}

// getSuggestionForErrorType returns actionable suggestions based on error type
func getSuggestionForErrorType(errorType ErrorType) string {
	suggestions := map[ErrorType]string{
		ErrorTypeTimeout:           "Check network connectivity or increase --timeout",
		ErrorTypeConnectionFailed:  "Verify the server URL is correct and the server is running",
		ErrorTypeDNSResolution:     "Check DNS settings and verify the server hostname is correct",
		ErrorTypeAuth:              "Verify the API key is valid and has not been revoked",
		ErrorTypeHTTPClientError:   "Verify the request parameters and the server URL",
		ErrorTypeHTTPServerError:   "The server is experiencing issues, try again later",
		ErrorTypeAPIResponse:       "The server returned an unexpected body, check the server version",
		ErrorTypeCategoryNotFound:  "Use --list-categories to see the categories the server knows about",
		ErrorTypeParsing:           "Ensure the URL returns valid RSS, Atom, or JSON feed content",
		ErrorTypeDiscovery:         "The page does not advertise a feed, pass the feed URL directly",
		ErrorTypeInvalidURL:        "Check the URL format and ensure it's a valid HTTP/HTTPS URL",
		ErrorTypeUnsupportedScheme: "Only HTTP and HTTPS URLs are supported",
		ErrorTypePrivateIP:         "Private IP addresses are blocked, use --allow-private-ips if intended",
		ErrorTypeConfiguration:     "Set --server/--api-key or the MINIFLUX_URL/MINIFLUX_API_KEY environment variables",
		ErrorTypeCircuitBreaker:    "The server is temporarily unavailable due to repeated failures",
		ErrorTypeRateLimit:         "Request rate limit exceeded, reduce --requests-per-second",
		ErrorTypeInternal:          "Internal error occurred, re-run with FLUXREG_DEBUG=1 for details",
	}

	if suggestion, exists := suggestions[errorType]; exists {
		return suggestion
	}

	return "Check the error details and try again"
}
