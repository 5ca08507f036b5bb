package widgets

import (
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// PeriscopeOnAir is a Periscope On Air button for one broadcaster
type PeriscopeOnAir struct {
	username string
	large    bool
}

// NewPeriscopeOnAir creates an On Air button. Periscope usernames follow Twitter screen name rules.
func NewPeriscopeOnAir(username string) (*PeriscopeOnAir, bool) {
	name := validate.CleanScreenName(username)
	if name == "" {
		return nil, false
	}
	return &PeriscopeOnAir{username: name}, true
}

// PeriscopeOnAirFromMap builds an On Air button from untrusted input
func PeriscopeOnAirFromMap(m map[string]any) (*PeriscopeOnAir, bool) {
	name, ok := stringValue(m["username"])
	if !ok {
		return nil, false
	}
	p, ok := NewPeriscopeOnAir(name)
	if !ok {
		return nil, false
	}
	if s, ok := stringValue(m["size"]); ok {
		p.SetSize(s)
	}
	return p, true
}

// Kind implements Widget
func (p *PeriscopeOnAir) Kind() string { return KindPeriscope }

// Username returns the broadcaster username
func (p *PeriscopeOnAir) Username() string { return p.username }

// SetSize selects the small or large button
func (p *PeriscopeOnAir) SetSize(size string) *PeriscopeOnAir {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "large":
		p.large = true
	case "small":
		p.large = false
	}
	return p
}

// ProfileURL returns the broadcaster profile page
func (p *PeriscopeOnAir) ProfileURL() string { return periscopeBaseURL + p.username }

// AttributeMap returns the data-* attributes for the Periscope widgets script
func (p *PeriscopeOnAir) AttributeMap() *params.Params {
	out := params.New()
	if p.large {
		out.Set("size", "large")
	}
	return out
}
