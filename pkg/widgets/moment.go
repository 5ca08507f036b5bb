package widgets

import (
	"strconv"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// Moment is an embedded Twitter Moment
type Moment struct {
	id    string
	width int
	limit int
}

// NewMoment creates a Moment embed
func NewMoment(id string) (*Moment, bool) {
	if !validate.SnowflakeID(id) {
		return nil, false
	}
	return &Moment{id: id}, true
}

// MomentFromMap builds a Moment from untrusted input
func MomentFromMap(m map[string]any) (*Moment, bool) {
	id, ok := identifier(m, "id", validate.SnowflakeID)
	if !ok {
		return nil, false
	}
	mo, _ := NewMoment(id)
	if n, ok := validate.Int(m["width"]); ok {
		mo.SetWidth(n)
	}
	if n, ok := validate.Int(m["limit"]); ok {
		mo.SetLimit(n)
	}
	return mo, true
}

// Kind implements Widget
func (m *Moment) Kind() string { return KindMoment }

// ID returns the Moment ID
func (m *Moment) ID() string { return m.id }

// SetWidth sets the maximum width in pixels
func (m *Moment) SetWidth(width int) *Moment {
	if validate.TimelineWidth(width) {
		m.width = width
	}
	return m
}

// SetLimit sets the number of Tweets to display
func (m *Moment) SetLimit(limit int) *Moment {
	if validate.TimelineLimit(limit) {
		m.limit = limit
	}
	return m
}

// AttributeMap returns the data-* attributes for widgets.js
func (m *Moment) AttributeMap() *params.Params {
	p := params.New().Set("id", m.id)
	if m.width > 0 {
		p.Set("width", m.width)
	}
	if m.limit > 0 {
		p.Set("limit", m.limit)
	}
	return p
}

// OEmbedURL returns the Moment URL
func (m *Moment) OEmbedURL() string { return twitterBaseURL + "i/moments/" + m.id }

// OEmbedParams returns the oEmbed query parameters
func (m *Moment) OEmbedParams() *params.Params {
	p := params.New().Set("url", m.OEmbedURL())
	if m.width > 0 {
		p.Set("maxwidth", m.width)
	}
	if m.limit > 0 {
		p.Set("limit", m.limit)
	}
	return p
}

// CacheTag implements OEmbedder
func (m *Moment) CacheTag() string { return KindMoment }

// DatasourceID implements OEmbedder
func (m *Moment) DatasourceID() string { return m.id }

// Endpoint implements OEmbedder
func (m *Moment) Endpoint() Endpoint { return EndpointTwitter }

// CacheCodes implements OEmbedder
func (m *Moment) CacheCodes() string {
	codes := ""
	if m.width > 0 {
		codes += "w" + strconv.Itoa(m.width)
	}
	if m.limit > 0 {
		codes += "n" + strconv.Itoa(m.limit)
	}
	return codes
}
