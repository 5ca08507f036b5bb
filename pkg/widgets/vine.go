package widgets

import (
	"strconv"
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// Vine is an embedded Vine video
type Vine struct {
	id       string
	width    int
	postcard bool
}

// NewVine creates a Vine embed
func NewVine(id string) (*Vine, bool) {
	if !validate.VineID(id) {
		return nil, false
	}
	return &Vine{id: id}, true
}

// VineFromMap builds a Vine embed from untrusted input
func VineFromMap(m map[string]any) (*Vine, bool) {
	id, ok := identifier(m, "id", validate.VineID)
	if !ok {
		return nil, false
	}
	v, _ := NewVine(id)
	if n, ok := validate.Int(m["width"]); ok {
		v.SetWidth(n)
	}
	if s, ok := stringValue(m["type"]); ok {
		v.SetType(s)
	}
	return v, true
}

// Kind implements Widget
func (v *Vine) Kind() string { return KindVine }

// ID returns the Vine ID
func (v *Vine) ID() string { return v.id }

// Width returns the maximum width, 0 when unset
func (v *Vine) Width() int { return v.width }

// Type returns simple or postcard
func (v *Vine) Type() string {
	if v.postcard {
		return "postcard"
	}
	return "simple"
}

// SetWidth sets the maximum width in pixels
func (v *Vine) SetWidth(width int) *Vine {
	if validate.VineWidth(width) {
		v.width = width
	}
	return v
}

// SetType selects the simple or postcard layout
func (v *Vine) SetType(embedType string) *Vine {
	switch strings.ToLower(strings.TrimSpace(embedType)) {
	case "postcard":
		v.postcard = true
	case "simple":
		v.postcard = false
	}
	return v
}

// EmbedURL returns the iframe source for the configured layout
func (v *Vine) EmbedURL() string {
	return v.OEmbedURL() + "/embed/" + v.Type()
}

// AttributeMap returns the data-* attributes for the iframe fallback
func (v *Vine) AttributeMap() *params.Params {
	p := params.New().Set("id", v.id)
	if v.width > 0 {
		p.Set("width", v.width)
	}
	if v.postcard {
		p.Set("type", "postcard")
	}
	return p
}

// OEmbedURL returns the Vine URL
func (v *Vine) OEmbedURL() string { return vineBaseURL + v.id }

// OEmbedParams returns the oEmbed query parameters
func (v *Vine) OEmbedParams() *params.Params {
	p := params.New().Set("url", v.OEmbedURL())
	if v.width > 0 {
		p.Set("maxwidth", v.width)
	}
	return p
}

// CacheTag implements OEmbedder
func (v *Vine) CacheTag() string { return KindVine }

// DatasourceID implements OEmbedder
func (v *Vine) DatasourceID() string { return v.id }

// Endpoint implements OEmbedder
func (v *Vine) Endpoint() Endpoint { return EndpointVine }

// CacheCodes implements OEmbedder
func (v *Vine) CacheCodes() string {
	codes := ""
	if v.width > 0 {
		codes += "w" + strconv.Itoa(v.width)
	}
	if v.postcard {
		codes += "p"
	}
	return codes
}
