package widgets

import (
	"strings"
	"unicode/utf8"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

const maxSearchQueryLength = 500

// Profile is the timeline of a single account
type Profile struct {
	Timeline
	screenName string
}

// NewProfile creates a profile timeline. A leading @ is accepted.
func NewProfile(screenName string) (*Profile, bool) {
	name := validate.CleanScreenName(screenName)
	if name == "" {
		return nil, false
	}
	return &Profile{screenName: name}, true
}

// ProfileFromMap builds a profile timeline from untrusted input
func ProfileFromMap(m map[string]any) (*Profile, bool) {
	name, ok := stringValue(m["screen_name"])
	if !ok {
		return nil, false
	}
	p, ok := NewProfile(name)
	if !ok {
		return nil, false
	}
	p.applyMap(m)
	return p, true
}

// Kind implements Widget
func (p *Profile) Kind() string { return KindProfile }

// ScreenName returns the account screen name
func (p *Profile) ScreenName() string { return p.screenName }

// AttributeMap returns the data-* attributes for widgets.js
func (p *Profile) AttributeMap() *params.Params {
	out := params.New().Set("screen-name", p.screenName)
	p.serialize(out, attributeShape, false)
	return out
}

// OEmbedURL returns the profile URL
func (p *Profile) OEmbedURL() string { return twitterBaseURL + p.screenName }

// OEmbedParams returns the oEmbed query parameters
func (p *Profile) OEmbedParams() *params.Params {
	out := params.New().Set("url", p.OEmbedURL())
	p.serialize(out, oembedShape, false)
	return out
}

// CacheTag implements OEmbedder
func (p *Profile) CacheTag() string { return KindProfile }

// DatasourceID implements OEmbedder
func (p *Profile) DatasourceID() string { return strings.ToLower(p.screenName) }

// CacheCodes implements OEmbedder
func (p *Profile) CacheCodes() string { return p.codes(false) }

// Endpoint implements OEmbedder
func (p *Profile) Endpoint() Endpoint { return EndpointTwitter }

// Collection is a curated timeline, optionally shown as a grid
type Collection struct {
	Timeline
	id   string
	grid bool
}

// NewCollection creates a collection timeline
func NewCollection(id string) (*Collection, bool) {
	if !validate.SnowflakeID(id) {
		return nil, false
	}
	return &Collection{id: id}, true
}

// CollectionFromMap builds a collection from untrusted input.
// widget_type or template set to "grid" selects the grid layout.
func CollectionFromMap(m map[string]any) (*Collection, bool) {
	id, ok := identifier(m, "id", validate.SnowflakeID)
	if !ok {
		return nil, false
	}
	c, _ := NewCollection(id)
	c.applyMap(m)
	for _, key := range []string{"widget_type", "template"} {
		if s, ok := stringValue(m[key]); ok && strings.EqualFold(strings.TrimSpace(s), "grid") {
			c.SetGrid(true)
		}
	}
	return c, true
}

// Kind implements Widget
func (c *Collection) Kind() string { return KindCollection }

// ID returns the collection ID
func (c *Collection) ID() string { return c.id }

// Grid reports whether the grid template is used
func (c *Collection) Grid() bool { return c.grid }

// SetGrid selects the grid template
func (c *Collection) SetGrid(grid bool) *Collection {
	c.grid = grid
	return c
}

// AttributeMap returns the data-* attributes for widgets.js
func (c *Collection) AttributeMap() *params.Params {
	out := params.New().Set("id", c.id)
	c.serialize(out, attributeShape, c.grid)
	return out
}

// OEmbedURL returns the collection URL
func (c *Collection) OEmbedURL() string { return twitterBaseURL + "_/timelines/" + c.id }

// OEmbedParams returns the oEmbed query parameters
func (c *Collection) OEmbedParams() *params.Params {
	out := params.New().Set("url", c.OEmbedURL())
	if c.grid {
		out.Set("widget_type", "grid")
	}
	c.serialize(out, oembedShape, c.grid)
	return out
}

// CacheTag implements OEmbedder
func (c *Collection) CacheTag() string { return KindCollection }

// DatasourceID implements OEmbedder
func (c *Collection) DatasourceID() string { return c.id }

// CacheCodes implements OEmbedder
func (c *Collection) CacheCodes() string {
	if c.grid {
		return "g" + c.codes(true)
	}
	return c.codes(false)
}

// Endpoint implements OEmbedder
func (c *Collection) Endpoint() Endpoint { return EndpointTwitter }

// Search is a search timeline backed by a widget configured on twitter.com.
// It has no oEmbed representation.
type Search struct {
	Timeline
	widgetID string
	query    string
}

// NewSearch creates a search timeline for a widget ID
func NewSearch(widgetID string) (*Search, bool) {
	if !validate.SnowflakeID(widgetID) {
		return nil, false
	}
	return &Search{widgetID: widgetID}, true
}

// SearchFromMap builds a search timeline from untrusted input
func SearchFromMap(m map[string]any) (*Search, bool) {
	id, ok := identifier(m, "widget_id", validate.SnowflakeID)
	if !ok {
		return nil, false
	}
	s, _ := NewSearch(id)
	s.applyMap(m)
	for _, key := range []string{"terms", "search"} {
		if q, ok := stringValue(m[key]); ok {
			s.SetQuery(q)
		}
	}
	return s, true
}

// Kind implements Widget
func (s *Search) Kind() string { return KindSearch }

// WidgetID returns the widget ID
func (s *Search) WidgetID() string { return s.widgetID }

// Query returns the search terms overriding the widget's saved search
func (s *Search) Query() string { return s.query }

// SetQuery overrides the saved search terms
func (s *Search) SetQuery(query string) *Search {
	query = strings.TrimSpace(query)
	if query != "" && utf8.RuneCountInString(query) <= maxSearchQueryLength {
		s.query = query
	}
	return s
}

// AttributeMap returns the data-* attributes for widgets.js
func (s *Search) AttributeMap() *params.Params {
	out := params.New().Set("widget-id", s.widgetID)
	if s.query != "" {
		out.Set("search-query", s.query)
	}
	s.serialize(out, attributeShape, false)
	return out
}

// OEmbedParams is always empty: search timelines cannot be requested through oEmbed
func (s *Search) OEmbedParams() *params.Params {
	return params.New()
}

// SearchURL returns the twitter.com search page for the configured terms
func (s *Search) SearchURL() string {
	if s.query == "" {
		return twitterBaseURL + "search"
	}
	return twitterBaseURL + "search?" + params.New().Set("q", s.query).Query()
}

// List is the timeline of a list, identified by ID or by owner and slug
type List struct {
	Timeline
	id    string
	owner string
	slug  string
}

// NewList creates a list timeline from a list ID
func NewList(id string) (*List, bool) {
	if !validate.SnowflakeID(id) {
		return nil, false
	}
	return &List{id: id}, true
}

// NewListBySlug creates a list timeline from the owner screen name and list slug
func NewListBySlug(owner, slug string) (*List, bool) {
	owner = validate.CleanScreenName(owner)
	slug = strings.TrimSpace(slug)
	if owner == "" || !validate.ListSlug(slug) {
		return nil, false
	}
	return &List{owner: owner, slug: slug}, true
}

// ListFromMap builds a list timeline from untrusted input.
// list_id wins over owner_screen_name and slug.
func ListFromMap(m map[string]any) (*List, bool) {
	var l *List
	if id, ok := identifier(m, "list_id", validate.SnowflakeID); ok {
		l, _ = NewList(id)
	} else {
		owner, _ := stringValue(m["owner_screen_name"])
		slug, _ := stringValue(m["slug"])
		var ok bool
		if l, ok = NewListBySlug(owner, slug); !ok {
			return nil, false
		}
	}
	l.applyMap(m)
	return l, true
}

// Kind implements Widget
func (l *List) Kind() string { return KindList }

// ID returns the list ID, "" for slug lists
func (l *List) ID() string { return l.id }

// Owner returns the owner screen name, "" for ID lists
func (l *List) Owner() string { return l.owner }

// Slug returns the list slug, "" for ID lists
func (l *List) Slug() string { return l.slug }

// AttributeMap returns the data-* attributes for widgets.js
func (l *List) AttributeMap() *params.Params {
	out := params.New()
	if l.id != "" {
		out.Set("list-id", l.id)
	} else {
		out.Set("list-owner-screen-name", l.owner).Set("list-slug", l.slug)
	}
	l.serialize(out, attributeShape, false)
	return out
}

// OEmbedURL returns the list URL
func (l *List) OEmbedURL() string {
	if l.id != "" {
		return twitterBaseURL + "i/lists/" + l.id
	}
	return twitterBaseURL + l.owner + "/lists/" + l.slug
}

// OEmbedParams returns the oEmbed query parameters
func (l *List) OEmbedParams() *params.Params {
	out := params.New().Set("url", l.OEmbedURL())
	l.serialize(out, oembedShape, false)
	return out
}

// CacheTag implements OEmbedder
func (l *List) CacheTag() string { return KindList }

// DatasourceID implements OEmbedder
func (l *List) DatasourceID() string {
	if l.id != "" {
		return l.id
	}
	return strings.ToLower(l.owner + "_" + l.slug)
}

// CacheCodes implements OEmbedder
func (l *List) CacheCodes() string { return l.codes(false) }

// Endpoint implements OEmbedder
func (l *List) Endpoint() Endpoint { return EndpointTwitter }
