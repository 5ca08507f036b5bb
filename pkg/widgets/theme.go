package widgets

import (
	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// ThemeOptions is the color customization shared by Tweets and timelines.
// Empty fields are unset and fall back to the widget defaults.
type ThemeOptions struct {
	theme       string
	linkColor   string
	borderColor string
}

// NewThemeOptions builds theme options, dropping any invalid value
func NewThemeOptions(theme, linkColor, borderColor string) ThemeOptions {
	var o ThemeOptions
	o.setTheme(theme)
	o.setLinkColor(linkColor)
	o.setBorderColor(borderColor)
	return o
}

// Theme returns the configured theme, light when unset
func (o *ThemeOptions) Theme() string {
	if o.theme == "" {
		return "light"
	}
	return o.theme
}

// LinkColor returns the link color as six upper-case hex digits, or "" when unset
func (o *ThemeOptions) LinkColor() string {
	return o.linkColor
}

// BorderColor returns the border color as six upper-case hex digits, or "" when unset
func (o *ThemeOptions) BorderColor() string {
	return o.borderColor
}

// Theming exposes the options for site-wide defaults
func (o *ThemeOptions) Theming() *ThemeOptions {
	return o
}

// Fill copies every field of defaults that is unset on o
func (o *ThemeOptions) Fill(defaults ThemeOptions) {
	if o.theme == "" {
		o.theme = defaults.theme
	}
	if o.linkColor == "" {
		o.linkColor = defaults.linkColor
	}
	if o.borderColor == "" {
		o.borderColor = defaults.borderColor
	}
}

func (o *ThemeOptions) setTheme(theme string) {
	if validate.Theme(theme) {
		o.theme = theme
	}
}

func (o *ThemeOptions) setLinkColor(color string) {
	if c := validate.CleanHexColor(color); c != "" {
		o.linkColor = c
	}
}

func (o *ThemeOptions) setBorderColor(color string) {
	if c := validate.CleanHexColor(color); c != "" {
		o.borderColor = c
	}
}

func themeAttributes(p *params.Params, o ThemeOptions) {
	if o.theme == "dark" {
		p.Set("theme", "dark")
	}
	if o.linkColor != "" {
		p.Set("link-color", "#"+o.linkColor)
	}
	if o.borderColor != "" {
		p.Set("border-color", "#"+o.borderColor)
	}
}

func themeOEmbed(p *params.Params, o ThemeOptions) {
	if o.theme == "dark" {
		p.Set("theme", "dark")
	}
	if o.linkColor != "" {
		p.Set("link_color", "#"+o.linkColor)
	}
	if o.borderColor != "" {
		p.Set("border_color", "#"+o.borderColor)
	}
}

func themeCodes(o ThemeOptions) string {
	codes := ""
	if o.theme == "dark" {
		codes += "d"
	}
	if o.linkColor != "" {
		codes += "l" + o.linkColor
	}
	if o.borderColor != "" {
		codes += "b" + o.borderColor
	}
	return codes
}

// applyTheme reads theme, link_color and border_color from untrusted input
func applyTheme(o *ThemeOptions, m map[string]any) {
	if s, ok := stringValue(m["theme"]); ok {
		o.setTheme(s)
	}
	if s, ok := stringValue(m["link_color"]); ok {
		o.setLinkColor(s)
	}
	if s, ok := stringValue(m["border_color"]); ok {
		o.setBorderColor(s)
	}
}
