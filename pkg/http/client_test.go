package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	expected := &ClientConfig{
		Timeout:           10 * time.Second,
		MaxRetries:        2,
		RetryBackoff:      500 * time.Millisecond,
		UserAgent:         "embed-forge/1.0",
		Headers:           map[string]string{"Accept": "application/json"},
		RequestsPerSecond: 5,
		Burst:             5,
	}

	if !reflect.DeepEqual(config, expected) {
		t.Errorf("DefaultConfig() = %+v, expected %+v", config, expected)
	}

}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name   string
		config *ClientConfig
	}{
		{
			name:   "with nil config",
			config: nil,
		},
		{
			name:   "with default config",
			config: DefaultConfig(),
		},
		{
			name: "with custom config",
			config: &ClientConfig{
				Timeout:      5 * time.Second,
				MaxRetries:   2,
				RetryBackoff: 500 * time.Millisecond,
				UserAgent:    "custom-agent/1.0",
				Headers:      map[string]string{"Custom": "header"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config)

			if client == nil {
				t.Fatal("NewClient() returned nil")
			}

			if client.client == nil {
				t.Error("NewClient() client.client should not be nil")
			}

			if client.config == nil {
				t.Error("NewClient() client.config should not be nil")
			}

			// When config is nil, should use default config
			if tt.config == nil {
				expectedConfig := DefaultConfig()
				if !reflect.DeepEqual(client.config, expectedConfig) {
					t.Errorf("NewClient(nil) should use default config")
				}
			} else {
				if !reflect.DeepEqual(client.config, tt.config) {
					t.Errorf("NewClient() config = %+v, expected %+v", client.config, tt.config)
				}
			}

			expectedTimeout := client.config.Timeout
			if client.client.Timeout != expectedTimeout {
				t.Errorf("NewClient() timeout = %v, expected %v", client.client.Timeout, expectedTimeout)
			}

			if hasLimiter := client.limiter != nil; hasLimiter != (client.config.RequestsPerSecond > 0) {
				t.Errorf("NewClient() limiter present = %v with RequestsPerSecond %v", hasLimiter, client.config.RequestsPerSecond)
			}
		})
	}
}

func TestIsRetryableStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   bool
	}{
		{
			name:       "200 OK - not retryable",
			statusCode: http.StatusOK,
			expected:   false,
		},
		{
			name:       "201 Created - not retryable",
			statusCode: http.StatusCreated,
			expected:   false,
		},
		{
			name:       "400 Bad Request - not retryable",
			statusCode: http.StatusBadRequest,
			expected:   false,
		},
		{
			name:       "401 Unauthorized - not retryable",
			statusCode: http.StatusUnauthorized,
			expected:   false,
		},
		{
			name:       "403 Forbidden - not retryable",
			statusCode: http.StatusForbidden,
			expected:   false,
		},
		{
			name:       "404 Not Found - not retryable",
			statusCode: http.StatusNotFound,
			expected:   false,
		},
		{
			name:       "429 Too Many Requests - retryable",
			statusCode: http.StatusTooManyRequests,
			expected:   true,
		},
		{
			name:       "500 Internal Server Error - retryable",
			statusCode: http.StatusInternalServerError,
			expected:   true,
		},
		{
			name:       "502 Bad Gateway - retryable",
			statusCode: http.StatusBadGateway,
			expected:   true,
		},
		{
			name:       "503 Service Unavailable - retryable",
			statusCode: http.StatusServiceUnavailable,
			expected:   true,
		},
		{
			name:       "504 Gateway Timeout - retryable",
			statusCode: http.StatusGatewayTimeout,
			expected:   true,
		},
		{
			name:       "505 HTTP Version Not Supported - not retryable",
			statusCode: http.StatusHTTPVersionNotSupported,
			expected:   false,
		},
		{
			name:       "edge case: 0 status code",
			statusCode: 0,
			expected:   false,
		},
		{
			name:       "edge case: negative status code",
			statusCode: -1,
			expected:   false,
		},
		{
			name:       "edge case: very high status code",
			statusCode: 999,
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsRetryableStatusCode(tt.statusCode)
			if result != tt.expected {
				t.Errorf("IsRetryableStatusCode(%d) = %v, expected %v",
					tt.statusCode, result, tt.expected)
			}
		})
	}
}

func TestGetWithContextRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test/1.0" {
			t.Errorf("User-Agent = %q, expected test/1.0", r.Header.Get("User-Agent"))
		}
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(&ClientConfig{
		Timeout:      time.Second,
		MaxRetries:   3,
		RetryBackoff: time.Millisecond,
		UserAgent:    "test/1.0",
	})

	resp, err := client.GetWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetWithContext() error = %v", err)
	}
	body, err := ReadResponseBody(resp)
	if err != nil || string(body) != "ok" {
		t.Errorf("body = %q, err = %v", body, err)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, expected 3", calls.Load())
	}
}

func TestGetWithContextReturnsLastRetryableResponse(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(&ClientConfig{Timeout: time.Second, MaxRetries: 1, RetryBackoff: time.Millisecond})

	resp, err := client.GetWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetWithContext() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, expected 429", resp.StatusCode)
	}
	if calls.Load() != 2 {
		t.Errorf("server called %d times, expected 2", calls.Load())
	}
}

func TestRateLimiterHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(&ClientConfig{Timeout: time.Second, RequestsPerSecond: 0.001, Burst: 1})

	resp, err := client.GetWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("first request error = %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.GetWithContext(ctx, server.URL); err == nil {
		t.Error("second request should fail while waiting for the rate limiter")
	}
}

func TestClientConfig_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config *ClientConfig
		valid  bool
	}{
		{
			name: "valid config",
			config: &ClientConfig{
				Timeout:      10 * time.Second,
				MaxRetries:   3,
				RetryBackoff: 1 * time.Second,
				UserAgent:    "test/1.0",
				Headers:      map[string]string{"Test": "header"},
			},
			valid: true,
		},
		{
			name: "zero timeout",
			config: &ClientConfig{
				Timeout:      0,
				MaxRetries:   3,
				RetryBackoff: 1 * time.Second,
				UserAgent:    "test/1.0",
				Headers:      map[string]string{},
			},
			valid: true, // Zero timeout might be valid in some cases
		},
		{
			name: "negative max retries",
			config: &ClientConfig{
				Timeout:      10 * time.Second,
				MaxRetries:   -1,
				RetryBackoff: 1 * time.Second,
				UserAgent:    "test/1.0",
				Headers:      map[string]string{},
			},
			valid: false, // Negative retries don't make sense
		},
		{
			name: "zero retry backoff",
			config: &ClientConfig{
				Timeout:      10 * time.Second,
				MaxRetries:   3,
				RetryBackoff: 0,
				UserAgent:    "test/1.0",
				Headers:      map[string]string{},
			},
			valid: true, // Zero backoff might be valid for immediate retries
		},
		{
			name: "empty user agent",
			config: &ClientConfig{
				Timeout:      10 * time.Second,
				MaxRetries:   3,
				RetryBackoff: 1 * time.Second,
				UserAgent:    "",
				Headers:      map[string]string{},
			},
			valid: true, // Empty user agent is allowed
		},
		{
			name: "nil headers",
			config: &ClientConfig{
				Timeout:      10 * time.Second,
				MaxRetries:   3,
				RetryBackoff: 1 * time.Second,
				UserAgent:    "test/1.0",
				Headers:      nil,
			},
			valid: true, // Nil headers should be handled gracefully
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Test that we can create a client with the config
			client := NewClient(tt.config)
			if client == nil {
				t.Fatal("NewClient() returned nil")
			}

			// Basic validation checks
			if tt.config.MaxRetries < 0 && tt.valid {
				t.Error("Negative MaxRetries should not be considered valid")
			}
		})
	}
}
