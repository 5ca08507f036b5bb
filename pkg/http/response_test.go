package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestEnsureStatusOK(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		status      string
		expectError bool
	}{
		{
			name:        "200 OK",
			statusCode:  http.StatusOK,
			status:      "200 OK",
			expectError: false,
		},
		{
			name:        "201 Created",
			statusCode:  http.StatusCreated,
			status:      "201 Created",
			expectError: true,
		},
		{
			name:        "400 Bad Request",
			statusCode:  http.StatusBadRequest,
			status:      "400 Bad Request",
			expectError: true,
		},
		{
			name:        "404 Not Found",
			statusCode:  http.StatusNotFound,
			status:      "404 Not Found",
			expectError: true,
		},
		{
			name:        "500 Internal Server Error",
			statusCode:  http.StatusInternalServerError,
			status:      "500 Internal Server Error",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.statusCode,
				Status:     tt.status,
			}

			err := EnsureStatusOK(resp)
			if (err != nil) != tt.expectError {
				t.Errorf("EnsureStatusOK() error = %v, expectError = %v", err, tt.expectError)
			}

			if err != nil && !strings.Contains(err.Error(), "unexpected status code") {
				t.Errorf("EnsureStatusOK() error should contain 'unexpected status code', got: %v", err)
			}
		})
	}
}

func TestReadResponseBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "simple text",
			body:     "Hello, World!",
			expected: "Hello, World!",
		},
		{
			name:     "empty body",
			body:     "",
			expected: "",
		},
		{
			name:     "JSON content",
			body:     `{"message": "hello", "status": "ok"}`,
			expected: `{"message": "hello", "status": "ok"}`,
		},
		{
			name:     "multiline content",
			body:     "Line 1\nLine 2\nLine 3",
			expected: "Line 1\nLine 2\nLine 3",
		},
		{
			name:     "unicode content",
			body:     "Hello 世界",
			expected: "Hello 世界",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				Body: io.NopCloser(strings.NewReader(tt.body)),
			}

			result, err := ReadResponseBody(resp)
			if err != nil {
				t.Errorf("ReadResponseBody() error = %v", err)
				return
			}

			if string(result) != tt.expected {
				t.Errorf("ReadResponseBody() = %q, expected %q", string(result), tt.expected)
			}
		})
	}
}

func TestDecodeJSONResponse(t *testing.T) {
	type TestStruct struct {
		Message string `json:"message"`
		Status  string `json:"status"`
		Count   int    `json:"count"`
	}

	tests := []struct {
		name        string
		statusCode  int
		body        string
		expectError bool
		expected    TestStruct
	}{
		{
			name:        "valid JSON with 200 OK",
			statusCode:  http.StatusOK,
			body:        `{"message": "hello", "status": "ok", "count": 42}`,
			expectError: false,
			expected: TestStruct{
				Message: "hello",
				Status:  "ok",
				Count:   42,
			},
		},
		{
			name:        "non-200 status code",
			statusCode:  http.StatusBadRequest,
			body:        `{"error": "bad request"}`,
			expectError: true,
			expected:    TestStruct{},
		},
		{
			name:        "invalid JSON with 200 OK",
			statusCode:  http.StatusOK,
			body:        `{"message": "hello", "status": }`, // Invalid JSON
			expectError: true,
			expected:    TestStruct{},
		},
		{
			name:        "empty JSON object",
			statusCode:  http.StatusOK,
			body:        `{}`,
			expectError: false,
			expected: TestStruct{
				Message: "",
				Status:  "",
				Count:   0,
			},
		},
		{
			name:        "non-JSON content",
			statusCode:  http.StatusOK,
			body:        "This is not JSON",
			expectError: true,
			expected:    TestStruct{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.statusCode,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}

			var result TestStruct
			err := DecodeJSONResponse(resp, &result)

			if (err != nil) != tt.expectError {
				t.Errorf("DecodeJSONResponse() error = %v, expectError = %v", err, tt.expectError)
				return
			}

			if !tt.expectError && result != tt.expected {
				t.Errorf("DecodeJSONResponse() result = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

// trackingReadCloser is a custom ReadCloser to track if Close() was called
type trackingReadCloser struct {
	*bytes.Reader
	closed bool
}

func (trc *trackingReadCloser) Close() error {
	trc.closed = true
	return nil
}

// Test that response body is properly closed
func TestResponseBodyClosure(t *testing.T) {

	body := "test content"
	tracker := &trackingReadCloser{
		Reader: bytes.NewReader([]byte(body)),
		closed: false,
	}

	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       tracker,
	}

	// Test ReadResponseBody
	_, err := ReadResponseBody(resp)
	if err != nil {
		t.Errorf("ReadResponseBody() error = %v", err)
	}

	if !tracker.closed {
		t.Error("ReadResponseBody() should close the response body")
	}

	// Reset for next test
	tracker.closed = false
	tracker.Reader = bytes.NewReader([]byte(`{"test": "data"}`))
	resp.Body = tracker

	// Test DecodeJSONResponse
	var target map[string]interface{}
	err = DecodeJSONResponse(resp, &target)
	if err != nil {
		t.Errorf("DecodeJSONResponse() error = %v", err)
	}

	if !tracker.closed {
		t.Error("DecodeJSONResponse() should close the response body")
	}
}

func TestReadResponseBodyLimit(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("a", MaxBodyBytes+100))),
	}

	data, err := ReadResponseBody(resp)
	if err != nil {
		t.Fatalf("ReadResponseBody() error = %v", err)
	}
	if len(data) != MaxBodyBytes {
		t.Errorf("ReadResponseBody() read %d bytes, expected %d", len(data), MaxBodyBytes)
	}
}
