package urlutils

import (
	"strings"
	"testing"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "valid http URL",
			url:      "http://example.com",
			expected: true,
		},
		{
			name:     "valid https URL",
			url:      "https://example.com",
			expected: true,
		},
		{
			name:     "valid URL with path",
			url:      "https://example.com/path/to/resource",
			expected: true,
		},
		{
			name:     "valid URL with query params",
			url:      "https://example.com/search?q=test&page=1",
			expected: true,
		},
		{
			name:     "valid URL with fragment",
			url:      "https://example.com/page#section",
			expected: true,
		},
		{
			name:     "valid URL with port",
			url:      "https://example.com:8080/api",
			expected: true,
		},
		{
			name:     "valid FTP URL",
			url:      "ftp://files.example.com/file.txt",
			expected: true,
		},
		{
			name:     "empty string",
			url:      "",
			expected: false,
		},
		{
			name:     "just domain without scheme",
			url:      "example.com",
			expected: false,
		},
		{
			name:     "scheme without host",
			url:      "https://",
			expected: false,
		},
		{
			name:     "invalid scheme",
			url:      "invalid://example.com",
			expected: true, // url.Parse accepts any scheme as valid
		},
		{
			name:     "malformed URL",
			url:      "ht tp://example.com",
			expected: false,
		},
		{
			name:     "URL with spaces",
			url:      "https://example .com",
			expected: false,
		},
		{
			name:     "localhost URL",
			url:      "http://localhost:3000",
			expected: true,
		},
		{
			name:     "IP address URL",
			url:      "http://192.168.1.1:8080",
			expected: true,
		},
		{
			name:     "URL with unicode domain",
			url:      "https://测试.com",
			expected: true,
		},
		{
			name:     "just scheme",
			url:      "https",
			expected: false,
		},
		{
			name:     "path without scheme or host",
			url:      "/path/to/resource",
			expected: false,
		},
		{
			name:     "query string only",
			url:      "?q=test",
			expected: false,
		},
		{
			name:     "fragment only",
			url:      "#section",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidURL(tt.url)
			if result != tt.expected {
				t.Errorf("IsValidURL(%q) = %v, expected %v", tt.url, result, tt.expected)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		relative string
		expected string
	}{
		{
			name:     "relative path",
			base:     "https://example.com/blog/post/",
			relative: "../images/photo.jpg",
			expected: "https://example.com/blog/images/photo.jpg",
		},
		{
			name:     "root relative path",
			base:     "https://example.com/blog/post/",
			relative: "/uploads/photo.jpg",
			expected: "https://example.com/uploads/photo.jpg",
		},
		{
			name:     "absolute URL unchanged",
			base:     "https://example.com/",
			relative: "https://cdn.example.net/photo.jpg",
			expected: "https://cdn.example.net/photo.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveURL(tt.base, tt.relative)
			if err != nil {
				t.Fatalf("ResolveURL returned error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("ResolveURL(%q, %q) = %q, expected %q", tt.base, tt.relative, result, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		expectedHost string
		expectedPath []string
		expectedOK   bool
	}{
		{
			name:         "status URL",
			url:          "https://twitter.com/jack/status/20",
			expectedHost: "twitter.com",
			expectedPath: []string{"jack", "status", "20"},
			expectedOK:   true,
		},
		{
			name:         "mobile host with trailing slash",
			url:          "https://mobile.twitter.com/jack/",
			expectedHost: "twitter.com",
			expectedPath: []string{"jack"},
			expectedOK:   true,
		},
		{
			name:         "www host upper case",
			url:          "http://WWW.X.COM/i/moments/1",
			expectedHost: "x.com",
			expectedPath: []string{"i", "moments", "1"},
			expectedOK:   true,
		},
		{
			name:         "scheme-less input",
			url:          "vine.co/v/bjHh0zHdgZT",
			expectedHost: "vine.co",
			expectedPath: []string{"v", "bjHh0zHdgZT"},
			expectedOK:   true,
		},
		{
			name:       "unsupported scheme",
			url:        "ftp://twitter.com/jack",
			expectedOK: false,
		},
		{
			name:       "empty string",
			url:        "   ",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := Parse(tt.url)
			if ok != tt.expectedOK {
				t.Fatalf("Parse(%q) ok = %v, expected %v", tt.url, ok, tt.expectedOK)
			}
			if !ok {
				return
			}
			if loc.Host != tt.expectedHost {
				t.Errorf("Parse(%q) host = %q, expected %q", tt.url, loc.Host, tt.expectedHost)
			}
			if strings.Join(loc.Segments, "/") != strings.Join(tt.expectedPath, "/") {
				t.Errorf("Parse(%q) segments = %v, expected %v", tt.url, loc.Segments, tt.expectedPath)
			}
		})
	}
}
