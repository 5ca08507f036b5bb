package shortcode

import (
	"strconv"
	"strings"
)

// Attributes holding integers
var intAttrs = map[string]bool{
	"width":  true,
	"height": true,
	"limit":  true,
}

// Attributes holding booleans
var boolAttrs = map[string]bool{
	"cards":            true,
	"conversation":     true,
	"hide_media":       true,
	"hide_thread":      true,
	"show_count":       true,
	"show_screen_name": true,
}

// Coerce converts string attributes into the typed values the widget builders expect.
// Integer attributes must be plain decimal numbers and boolean attributes one of the recognized
// words; anything else is dropped. Other attributes stay strings.
func Coerce(attrs map[string]string) map[string]any {
	m := make(map[string]any, len(attrs))
	for key, raw := range attrs {
		value := strings.TrimSpace(raw)
		switch {
		case intAttrs[key]:
			if n, ok := parseDecimal(value); ok {
				m[key] = n
			}
		case boolAttrs[key]:
			if b, ok := ParseBool(value); ok {
				m[key] = b
			}
		default:
			m[key] = value
		}
	}
	return m
}

// ParseBool reads the shortcode spellings of true and false
func ParseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on", "show":
		return true, true
	case "false", "0", "no", "off", "hidden", "hide", "none":
		return false, true
	}
	return false, false
}

func parseDecimal(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
