// Package validate provides the predicates and cleaners used by widget setters.
// None of them return errors: callers branch on the result and leave the field untouched on failure.
package validate

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dimension bounds, inclusive
const (
	TweetMinWidth     = 220
	TweetMaxWidth     = 550
	TimelineMinWidth  = 180
	TimelineMaxWidth  = 1200
	TimelineMinHeight = 200
	TimelineMinLimit  = 1
	TimelineMaxLimit  = 20
	VineMinWidth      = 100
	VineMaxWidth      = 600
)

const maxHashtagLength = 100

var (
	screenNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,20}$`)
	listSlugPattern   = regexp.MustCompile(`(?i)^[a-z][a-z0-9_-]{0,24}$`)
	hexPattern        = regexp.MustCompile(`^[0-9A-F]{6}$`)
	langPattern       = regexp.MustCompile(`^[a-z]{2,3}(-[a-z]{2,4})?$`)
	vineIDPattern     = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	trackingIDPattern = regexp.MustCompile(`^[a-z0-9]+$`)
)

// Int returns v as an int when it holds a Go integer kind.
// Numeric strings, floats and bools are rejected.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// IntInRange checks that v is an integer between min and max inclusive
func IntInRange(v any, min, max int) (int, bool) {
	n, ok := Int(v)
	if !ok || n < min || n > max {
		return 0, false
	}
	return n, true
}

// IntAtLeast checks that v is an integer no smaller than min
func IntAtLeast(v any, min int) (int, bool) {
	n, ok := Int(v)
	if !ok || n < min {
		return 0, false
	}
	return n, true
}

// TweetWidth reports whether width fits a single Tweet embed
func TweetWidth(width int) bool {
	return width >= TweetMinWidth && width <= TweetMaxWidth
}

// TimelineWidth reports whether width fits a timeline embed
func TimelineWidth(width int) bool {
	return width >= TimelineMinWidth && width <= TimelineMaxWidth
}

// TimelineHeight reports whether height fits a timeline embed
func TimelineHeight(height int) bool {
	return height >= TimelineMinHeight
}

// TimelineLimit reports whether limit is an accepted Tweet count for a timeline
func TimelineLimit(limit int) bool {
	return limit >= TimelineMinLimit && limit <= TimelineMaxLimit
}

// VineWidth reports whether width fits a Vine embed
func VineWidth(width int) bool {
	return width >= VineMinWidth && width <= VineMaxWidth
}

// SnowflakeID reports whether id is a non-empty string of ASCII digits
func SnowflakeID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// CleanScreenName trims whitespace and one leading @.
// It returns an empty string when the result is not a valid screen name.
func CleanScreenName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "@")
	name = strings.TrimSpace(name)
	if !screenNamePattern.MatchString(name) {
		return ""
	}
	return name
}

// ScreenName reports whether name is valid once cleaned
func ScreenName(name string) bool {
	return CleanScreenName(name) != ""
}

// ListSlug reports whether slug is a valid list slug
func ListSlug(slug string) bool {
	return listSlugPattern.MatchString(slug)
}

// CleanHexColor normalizes a hex color to six upper-case digits without the leading #.
// Three-digit shorthand is expanded. Anything else yields an empty string.
func CleanHexColor(color string) string {
	color = strings.TrimSpace(color)
	color = strings.TrimPrefix(color, "#")
	color = strings.ToUpper(color)

	if len(color) == 3 {
		color = string([]byte{color[0], color[0], color[1], color[1], color[2], color[2]})
	}

	if !hexPattern.MatchString(color) {
		return ""
	}
	return color
}

// HexColor reports whether color can be cleaned into a hex color
func HexColor(color string) bool {
	return CleanHexColor(color) != ""
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Theme reports whether theme is a known widget theme
func Theme(theme string) bool {
	return oneOf(theme, "light", "dark")
}

// Align reports whether align is a known alignment
func Align(align string) bool {
	return oneOf(align, "left", "center", "right", "none")
}

// Count reports whether count is a known share-button count box position
func Count(count string) bool {
	return oneOf(count, "none", "horizontal", "vertical")
}

// ChromeToken reports whether token is a known timeline chrome option
func ChromeToken(token string) bool {
	return oneOf(token, "noheader", "nofooter", "noborders", "noscrollbar", "transparent")
}

// AriaPolite reports whether value is a known ARIA live-region politeness
func AriaPolite(value string) bool {
	return oneOf(value, "polite", "assertive", "rude")
}

// CleanLang lower-cases a language tag and returns it if it looks like a BCP47 language[-region]
func CleanLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !langPattern.MatchString(lang) {
		return ""
	}
	return lang
}

// Lang reports whether lang is an accepted widget language
func Lang(lang string) bool {
	return CleanLang(lang) != ""
}

// CleanHashtag strips a leading # and returns the tag if it only contains letters, digits and underscores
func CleanHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	if tag == "" || utf8.RuneCountInString(tag) > maxHashtagLength {
		return ""
	}
	for _, r := range tag {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return ""
		}
	}
	return tag
}

// VineID reports whether id is a Vine video identifier
func VineID(id string) bool {
	return vineIDPattern.MatchString(id)
}

// CleanTrackingID lower-cases a conversion tracking ID and validates it
func CleanTrackingID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if !trackingIDPattern.MatchString(id) {
		return ""
	}
	return id
}

// TrackingID reports whether id is a valid conversion tracking ID
func TrackingID(id string) bool {
	return CleanTrackingID(id) != ""
}

// AbsoluteURL reports whether raw is an absolute http or https URL
func AbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
