package widgets

import (
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/urlutils"
)

// reservedPaths are twitter.com top-level paths that are not screen names
var reservedPaths = map[string]bool{
	"i": true, "intent": true, "search": true, "hashtag": true, "home": true,
	"explore": true, "settings": true, "share": true, "login": true, "signup": true,
	"notifications": true, "messages": true, "tos": true, "privacy": true,
}

// periscopeReservedPaths are periscope.tv top-level paths that are not usernames
var periscopeReservedPaths = map[string]bool{
	"w": true, "i": true, "about": true, "download": true, "tos": true,
	"privacy": true, "content": true, "login": true, "channel": true,
}

// Resolve maps a bare Tweet, timeline, Moment, Vine or Periscope URL to its widget
func Resolve(rawURL string) (Widget, bool) {
	loc, ok := urlutils.Parse(rawURL)
	if !ok {
		return nil, false
	}

	switch loc.Host {
	case "twitter.com", "x.com":
		return resolveTwitter(loc.Segments)
	case "vine.co":
		if len(loc.Segments) >= 2 && loc.Segments[0] == "v" {
			if v, ok := NewVine(loc.Segments[1]); ok {
				return v, true
			}
		}
	case "periscope.tv", "pscp.tv":
		if len(loc.Segments) >= 1 && !periscopeReservedPaths[strings.ToLower(loc.Segments[0])] {
			if p, ok := NewPeriscopeOnAir(loc.Segments[0]); ok {
				return p, true
			}
		}
	}
	return nil, false
}

func resolveTwitter(segments []string) (Widget, bool) {
	if len(segments) == 0 {
		return nil, false
	}

	first := strings.ToLower(segments[0])
	if first == "i" {
		if len(segments) >= 3 {
			switch strings.ToLower(segments[1]) {
			case "moments", "events":
				if m, ok := NewMoment(segments[2]); ok {
					return m, true
				}
			case "lists":
				if l, ok := NewList(segments[2]); ok {
					return l, true
				}
			case "web":
				if len(segments) >= 4 && strings.ToLower(segments[2]) == "status" {
					if t, ok := NewTweet(segments[3]); ok {
						return t, true
					}
				}
			}
		}
		return nil, false
	}
	if reservedPaths[first] {
		return nil, false
	}

	if len(segments) == 1 {
		if p, ok := NewProfile(segments[0]); ok {
			return p, true
		}
		return nil, false
	}

	switch strings.ToLower(segments[1]) {
	case "status", "statuses":
		if len(segments) >= 3 {
			if t, ok := NewTweet(segments[2]); ok {
				return t, true
			}
		}
	case "timelines":
		if len(segments) >= 3 {
			if c, ok := NewCollection(segments[2]); ok {
				return c, true
			}
		}
	case "lists":
		if len(segments) >= 3 {
			if l, ok := NewListBySlug(segments[0], segments[2]); ok {
				return l, true
			}
		}
	}
	return nil, false
}
