// Package widgets contains the configuration objects for every embeddable widget.
//
// Each object is built from its identifying fields, adjusted through chainable setters that
// silently ignore invalid input, and serialized either as data-* attributes for the
// JavaScript widgets or as oEmbed query parameters.
package widgets

import (
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
)

// Widget kinds
const (
	KindTweet      = "tweet"
	KindProfile    = "profile"
	KindCollection = "collection"
	KindSearch     = "search"
	KindList       = "list"
	KindMoment     = "moment"
	KindFollow     = "follow"
	KindShare      = "share"
	KindVine       = "vine"
	KindPeriscope  = "periscope"
)

// Endpoint identifies which oEmbed provider serves a widget
type Endpoint string

// Known oEmbed providers
const (
	EndpointTwitter Endpoint = "twitter"
	EndpointVine    Endpoint = "vine"
)

const (
	twitterBaseURL   = "https://twitter.com/"
	vineBaseURL      = "https://vine.co/v/"
	periscopeBaseURL = "https://www.periscope.tv/"
)

// Widget is implemented by every configuration object
type Widget interface {
	Kind() string
	AttributeMap() *params.Params
}

// OEmbedder is a widget whose markup can be requested from an oEmbed endpoint
type OEmbedder interface {
	Widget
	OEmbedURL() string
	OEmbedParams() *params.Params
	CacheTag() string
	DatasourceID() string
	CacheCodes() string
	Endpoint() Endpoint
}

// Themed is a widget carrying the shared theme options
type Themed interface {
	Widget
	Theming() *ThemeOptions
}

// stringValue returns v when it is a string
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// boolValue returns v when it is a bool
func boolValue(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// stringList accepts a string split on commas and whitespace, or a list of strings
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return strings.FieldsFunc(t, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// identifier returns the string under key when it passes check
func identifier(m map[string]any, key string, check func(string) bool) (string, bool) {
	s, ok := stringValue(m[key])
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if !check(s) {
		return "", false
	}
	return s, true
}
