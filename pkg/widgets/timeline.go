package widgets

import (
	"strconv"
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// chromeTokens lists the chrome options in output order with their cache codes
var chromeTokens = []struct {
	token string
	code  string
}{
	{"noheader", "H"},
	{"nofooter", "F"},
	{"noborders", "B"},
	{"noscrollbar", "S"},
	{"transparent", "T"},
}

// Timeline holds the display options shared by every timeline variant
type Timeline struct {
	ThemeOptions

	width      int
	height     int
	limit      int
	chrome     map[string]bool
	ariaPolite string
}

// timelineShape names the keys used by one serialization
type timelineShape struct {
	width  string
	limit  string
	height string
	chrome string
	aria   string
	theme  func(*params.Params, ThemeOptions)
}

var (
	attributeShape = timelineShape{"width", "tweet-limit", "height", "chrome", "aria-polite", themeAttributes}
	oembedShape    = timelineShape{"maxwidth", "limit", "maxheight", "chrome", "aria_polite", themeOEmbed}
)

// Width returns the maximum width, 0 when unset
func (t *Timeline) Width() int { return t.width }

// Height returns the fixed height, 0 when unset
func (t *Timeline) Height() int { return t.height }

// Limit returns the number of Tweets to display, 0 when unset
func (t *Timeline) Limit() int { return t.limit }

// AriaPolite returns the live-region politeness, polite when unset
func (t *Timeline) AriaPolite() string {
	if t.ariaPolite == "" {
		return "polite"
	}
	return t.ariaPolite
}

// Chrome returns the enabled chrome tokens in canonical order
func (t *Timeline) Chrome() []string {
	var tokens []string
	for _, c := range chromeTokens {
		if t.chrome[c.token] {
			tokens = append(tokens, c.token)
		}
	}
	return tokens
}

// SetWidth sets the maximum width in pixels
func (t *Timeline) SetWidth(width int) *Timeline {
	if validate.TimelineWidth(width) {
		t.width = width
	}
	return t
}

// SetHeight sets a fixed height in pixels. Ignored in output when a limit is set.
func (t *Timeline) SetHeight(height int) *Timeline {
	if validate.TimelineHeight(height) {
		t.height = height
	}
	return t
}

// SetLimit sets the number of Tweets to display
func (t *Timeline) SetLimit(limit int) *Timeline {
	if validate.TimelineLimit(limit) {
		t.limit = limit
	}
	return t
}

// AddChrome enables chrome tokens, skipping unknown ones
func (t *Timeline) AddChrome(tokens ...string) *Timeline {
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if !validate.ChromeToken(token) {
			continue
		}
		if t.chrome == nil {
			t.chrome = make(map[string]bool)
		}
		t.chrome[token] = true
	}
	return t
}

// SetAriaPolite sets the politeness of the timeline live region
func (t *Timeline) SetAriaPolite(value string) *Timeline {
	if validate.AriaPolite(value) {
		t.ariaPolite = value
	}
	return t
}

// SetTheme sets the light or dark theme
func (t *Timeline) SetTheme(theme string) *Timeline {
	t.setTheme(theme)
	return t
}

// SetLinkColor sets the link color
func (t *Timeline) SetLinkColor(color string) *Timeline {
	t.setLinkColor(color)
	return t
}

// SetBorderColor sets the border color
func (t *Timeline) SetBorderColor(color string) *Timeline {
	t.setBorderColor(color)
	return t
}

// applyMap reads the shared timeline keys from untrusted input
func (t *Timeline) applyMap(m map[string]any) {
	if n, ok := validate.Int(m["width"]); ok {
		t.SetWidth(n)
	}
	if n, ok := validate.Int(m["height"]); ok {
		t.SetHeight(n)
	}
	if n, ok := validate.Int(m["limit"]); ok {
		t.SetLimit(n)
	}
	if v, ok := m["chrome"]; ok {
		t.AddChrome(stringList(v)...)
	}
	if s, ok := stringValue(m["aria_polite"]); ok {
		t.SetAriaPolite(s)
	}
	applyTheme(&t.ThemeOptions, m)
}

// effectiveChrome drops tokens that do not apply to the current configuration
func (t *Timeline) effectiveChrome(grid bool) []string {
	var tokens []string
	for _, token := range t.Chrome() {
		if t.limit > 0 && token == "noscrollbar" {
			continue
		}
		if grid && token != "nofooter" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// serialize writes the timeline options after the variant's identity keys.
// A limit replaces the height, the scrollbar option and the politeness.
func (t *Timeline) serialize(p *params.Params, shape timelineShape, grid bool) {
	if t.width > 0 {
		p.Set(shape.width, t.width)
	}
	if t.limit > 0 {
		p.Set(shape.limit, t.limit)
	} else if t.height > 0 && !grid {
		p.Set(shape.height, t.height)
	}
	if chrome := t.effectiveChrome(grid); len(chrome) > 0 {
		p.Set(shape.chrome, strings.Join(chrome, " "))
	}
	if t.limit == 0 && !grid && t.ariaPolite != "" && t.ariaPolite != "polite" {
		p.Set(shape.aria, t.ariaPolite)
	}
	if !grid {
		shape.theme(p, t.ThemeOptions)
	}
}

// codes encodes the timeline customizations for the cache key
func (t *Timeline) codes(grid bool) string {
	var b strings.Builder
	if t.width > 0 {
		b.WriteString("w" + strconv.Itoa(t.width))
	}
	if t.limit > 0 {
		b.WriteString("n" + strconv.Itoa(t.limit))
	} else if t.height > 0 && !grid {
		b.WriteString("h" + strconv.Itoa(t.height))
	}
	enabled := make(map[string]bool)
	for _, token := range t.effectiveChrome(grid) {
		enabled[token] = true
	}
	for _, c := range chromeTokens {
		if enabled[c.token] {
			b.WriteString(c.code)
		}
	}
	if t.limit == 0 && !grid {
		switch t.ariaPolite {
		case "assertive":
			b.WriteString("a")
		case "rude":
			b.WriteString("r")
		}
	}
	if !grid {
		b.WriteString(themeCodes(t.ThemeOptions))
	}
	return b.String()
}
