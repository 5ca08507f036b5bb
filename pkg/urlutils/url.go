// Package urlutils provides URL helpers shared by the resolvers and the card builder.
package urlutils

import (
	"net/url"
	"strings"
)

// IsValidURL checks if a URL is valid
func IsValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ResolveURL resolves a relative URL against a base URL
// If the URL is already absolute, it returns it unchanged
func ResolveURL(baseURL, relativeURL string) (string, error) {
	rel, err := url.Parse(relativeURL)
	if err != nil {
		return "", err
	}

	if rel.IsAbs() {
		return relativeURL, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	return base.ResolveReference(rel).String(), nil
}

// Location is a URL reduced to what the embed resolvers match on
type Location struct {
	Host     string
	Segments []string
	Query    url.Values
}

// Parse splits an http(s) URL into a lower-cased host without the www. and mobile. prefixes
// and its non-empty path segments. Scheme-less input such as "twitter.com/jack" is accepted.
func Parse(raw string) (Location, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Location{}, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Location{}, false
	}

	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "mobile.", "m."} {
		host = strings.TrimPrefix(host, prefix)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	return Location{Host: host, Segments: segments, Query: u.Query()}, true
}
