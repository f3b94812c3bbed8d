package model

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRegistrationError(t *testing.T) {
	err := NewRegistrationError(ErrorTypeTimeout, "request timed out")

	if err.ErrorType != ErrorTypeTimeout {
		t.Errorf("expected ErrorType %v, got %v", ErrorTypeTimeout, err.ErrorType)
	}
	if err.Message != "request timed out" {
		t.Errorf("expected message 'request timed out', got %q", err.Message)
	}
	if err.ID == "" {
		t.Error("expected non-empty correlation ID")
	}
	if err.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
	if err.Suggestion == "" {
		t.Error("expected non-empty suggestion")
	}
}

func TestRegistrationError_Error(t *testing.T) {
	err := NewRegistrationError(ErrorTypeHTTPClientError, "client error").
		WithURL("https://mf.example/v1/feeds").
		WithOperation("create_feed").
		WithHTTP(400, `{"error_message": "bad feed"}`).
		WithServerDetail("bad feed")

	errStr := err.Error()

	for _, part := range []string{
		"client error",
		"URL: https://mf.example/v1/feeds",
		"Operation: create_feed",
		"HTTP Status: 400",
		"Server: bad feed",
		"Type: http_client_error",
		"ID:",
	} {
		if !strings.Contains(errStr, part) {
			t.Errorf("expected error string to contain %q, got %q", part, errStr)
		}
	}
}

func TestRegistrationError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	re := NewRegistrationErrorWithCause(ErrorTypeNetwork, "network error", originalErr)

	if !errors.Is(re, originalErr) {
		t.Errorf("expected errors.Is to find the cause through Unwrap")
	}
}

func TestRegistrationError_WithHTTPTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", 2048)
	err := NewRegistrationError(ErrorTypeHTTPServerError, "server error").WithHTTP(503, long)

	if err.HTTPStatus != 503 {
		t.Errorf("expected HTTP status 503, got %d", err.HTTPStatus)
	}
	if len(err.ResponseBody) >= 2048 {
		t.Errorf("expected truncated body, got %d bytes", len(err.ResponseBody))
	}
	if !strings.HasSuffix(err.ResponseBody, "...") {
		t.Errorf("expected truncation marker, got %q", err.ResponseBody[len(err.ResponseBody)-8:])
	}
}

func TestCreateHTTPError_ParsesErrorMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusBadRequest)
	resp := rec.Result()

	err := CreateHTTPError(resp, []byte(`{"error_message": "invalid feed URL"}`), "https://mf.example/v1/feeds")

	if err.ErrorType != ErrorTypeHTTPClientError {
		t.Errorf("expected http_client_error, got %v", err.ErrorType)
	}
	if err.ServerDetail != "invalid feed URL" {
		t.Errorf("expected parsed server detail, got %q", err.ServerDetail)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.HTTPStatus)
	}
}

func TestCreateHTTPError_AuthStatuses(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		rec := httptest.NewRecorder()
		rec.WriteHeader(status)

		err := CreateHTTPError(rec.Result(), nil, "https://mf.example/v1/categories")
		if err.ErrorType != ErrorTypeAuth {
			t.Errorf("status %d: expected auth error, got %v", status, err.ErrorType)
		}
	}
}

func TestCreateCategoryNotFoundError(t *testing.T) {
	err := CreateCategoryNotFoundError("Sports", []Category{
		{ID: 1, Title: "Tech"},
		{ID: 2, Title: "News"},
	})

	if err.ErrorType != ErrorTypeCategoryNotFound {
		t.Errorf("expected category_not_found, got %v", err.ErrorType)
	}
	if len(err.AvailableCategories) != 2 {
		t.Fatalf("expected 2 available categories, got %d", len(err.AvailableCategories))
	}
	if !strings.Contains(err.Error(), "Tech") || !strings.Contains(err.Error(), "News") {
		t.Errorf("expected error to list available titles, got %q", err.Error())
	}
}

func TestCreateNetworkError_Classification(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"rate limit", errors.New(`Get "https://mf.example/v1/feeds": rate: Wait(n=1) would exceed context deadline`), ErrorTypeRateLimit},
		{"timeout", errors.New("request timed out"), ErrorTypeTimeout},
		{"dns", errors.New("no such host"), ErrorTypeDNSResolution},
		{"refused", errors.New("connection refused"), ErrorTypeConnectionFailed},
		{"other", errors.New("something else"), ErrorTypeNetwork},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			re := CreateNetworkError(tc.err, "https://mf.example/v1/categories")
			if re.ErrorType != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, re.ErrorType)
			}
		})
	}
}

func TestGetSuggestionForErrorType_Unknown(t *testing.T) {
	err := NewRegistrationError(ErrorTypeUnknown, "mystery")
	if err.Suggestion == "" {
		t.Error("expected fallback suggestion for unknown error type")
	}
}
