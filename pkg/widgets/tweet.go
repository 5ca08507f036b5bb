package widgets

import (
	"strconv"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// Tweet is a single embedded Tweet
type Tweet struct {
	ThemeOptions

	id         string
	hideCards  bool
	hideThread bool
	align      string
	width      int
}

// NewTweet creates a Tweet embed for the given status ID
func NewTweet(id string) (*Tweet, bool) {
	if !validate.SnowflakeID(id) {
		return nil, false
	}
	return &Tweet{id: id}, true
}

// TweetFromMap builds a Tweet from untrusted input
func TweetFromMap(m map[string]any) (*Tweet, bool) {
	id, ok := identifier(m, "id", validate.SnowflakeID)
	if !ok {
		return nil, false
	}
	t, _ := NewTweet(id)

	if b, ok := boolValue(m["cards"]); ok {
		t.SetCards(b)
	}
	if b, ok := boolValue(m["hide_media"]); ok {
		t.SetCards(!b)
	}
	if b, ok := boolValue(m["conversation"]); ok {
		t.SetConversation(b)
	}
	if b, ok := boolValue(m["hide_thread"]); ok {
		t.SetConversation(!b)
	}
	if s, ok := stringValue(m["align"]); ok {
		t.SetAlign(s)
	}
	if n, ok := validate.Int(m["width"]); ok {
		t.SetWidth(n)
	}
	applyTheme(&t.ThemeOptions, m)
	return t, true
}

// Kind implements Widget
func (t *Tweet) Kind() string { return KindTweet }

// ID returns the status ID
func (t *Tweet) ID() string { return t.id }

// Width returns the configured maximum width, 0 when unset
func (t *Tweet) Width() int { return t.width }

// Align returns the configured alignment
func (t *Tweet) Align() string {
	if t.align == "" {
		return "none"
	}
	return t.align
}

// SetCards toggles display of photos, videos and link previews
func (t *Tweet) SetCards(show bool) *Tweet {
	t.hideCards = !show
	return t
}

// SetConversation toggles display of the parent Tweet
func (t *Tweet) SetConversation(show bool) *Tweet {
	t.hideThread = !show
	return t
}

// SetAlign floats the Tweet left, center or right
func (t *Tweet) SetAlign(align string) *Tweet {
	if validate.Align(align) {
		t.align = align
	}
	return t
}

// SetWidth sets the maximum width in pixels
func (t *Tweet) SetWidth(width int) *Tweet {
	if validate.TweetWidth(width) {
		t.width = width
	}
	return t
}

// SetTheme sets the light or dark theme
func (t *Tweet) SetTheme(theme string) *Tweet {
	t.setTheme(theme)
	return t
}

// SetLinkColor sets the link color
func (t *Tweet) SetLinkColor(color string) *Tweet {
	t.setLinkColor(color)
	return t
}

// SetBorderColor sets the border color
func (t *Tweet) SetBorderColor(color string) *Tweet {
	t.setBorderColor(color)
	return t
}

func (t *Tweet) alignment() string {
	if t.align == "none" {
		return ""
	}
	return t.align
}

// AttributeMap returns the data-* attributes for widgets.js
func (t *Tweet) AttributeMap() *params.Params {
	p := params.New().Set("id", t.id)
	if t.hideCards {
		p.Set("cards", "hidden")
	}
	if t.hideThread {
		p.Set("conversation", "none")
	}
	if a := t.alignment(); a != "" {
		p.Set("align", a)
	}
	if t.width > 0 {
		p.Set("width", t.width)
	}
	themeAttributes(p, t.ThemeOptions)
	return p
}

// OEmbedURL returns the canonical status URL
func (t *Tweet) OEmbedURL() string {
	return twitterBaseURL + "_/status/" + t.id
}

// OEmbedParams returns the oEmbed query parameters
func (t *Tweet) OEmbedParams() *params.Params {
	p := params.New().Set("url", t.OEmbedURL())
	if t.hideCards {
		p.Set("hide_media", true)
	}
	if t.hideThread {
		p.Set("hide_thread", true)
	}
	if a := t.alignment(); a != "" {
		p.Set("align", a)
	}
	if t.width > 0 {
		p.Set("maxwidth", t.width)
	}
	themeOEmbed(p, t.ThemeOptions)
	return p
}

// CacheTag implements OEmbedder
func (t *Tweet) CacheTag() string { return KindTweet }

// DatasourceID implements OEmbedder
func (t *Tweet) DatasourceID() string { return t.id }

// Endpoint implements OEmbedder
func (t *Tweet) Endpoint() Endpoint { return EndpointTwitter }

// CacheCodes encodes the customizations for the cache key
func (t *Tweet) CacheCodes() string {
	codes := ""
	if t.hideCards {
		codes += "m"
	}
	if t.hideThread {
		codes += "t"
	}
	switch t.alignment() {
	case "left":
		codes += "L"
	case "center":
		codes += "C"
	case "right":
		codes += "R"
	}
	if t.width > 0 {
		codes += "w" + strconv.Itoa(t.width)
	}
	return codes + themeCodes(t.ThemeOptions)
}
