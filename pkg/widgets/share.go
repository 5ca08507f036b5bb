package widgets

import (
	"sort"
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

// RelatedAccount is an account suggested after sharing
type RelatedAccount struct {
	ScreenName  string
	Description string
}

// ShareButton is a Tweet button prefilling a new Tweet
type ShareButton struct {
	text     string
	url      string
	hashtags []string
	via      string
	related  []RelatedAccount
	large    bool
	count    string
}

// NewShareButton creates an empty Tweet button. It shares the current page.
func NewShareButton() *ShareButton {
	return &ShareButton{}
}

// ShareButtonFromMap builds a Tweet button from untrusted input.
// related accepts "name:description,name" strings, string lists or a map of name to description.
func ShareButtonFromMap(m map[string]any) (*ShareButton, bool) {
	s := NewShareButton()
	if v, ok := stringValue(m["text"]); ok {
		s.SetText(v)
	}
	if v, ok := stringValue(m["url"]); ok {
		s.SetURL(v)
	}
	if v, ok := m["hashtags"]; ok {
		s.AddHashtags(stringList(v)...)
	}
	if v, ok := stringValue(m["via"]); ok {
		s.SetVia(v)
	}
	switch related := m["related"].(type) {
	case map[string]any:
		names := make([]string, 0, len(related))
		for name := range related {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			desc, _ := stringValue(related[name])
			s.AddRelated(name, desc)
		}
	case map[string]string:
		names := make([]string, 0, len(related))
		for name := range related {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s.AddRelated(name, related[name])
		}
	default:
		entries := related
		if str, ok := related.(string); ok {
			entries = strings.Split(str, ",")
		}
		for _, entry := range stringList(entries) {
			name, desc, _ := strings.Cut(entry, ":")
			s.AddRelated(name, desc)
		}
	}
	if v, ok := stringValue(m["size"]); ok {
		s.SetSize(v)
	}
	if v, ok := stringValue(m["count"]); ok {
		s.SetCount(v)
	}
	return s, true
}

// Kind implements Widget
func (s *ShareButton) Kind() string { return KindShare }

// Text returns the prefilled Tweet text
func (s *ShareButton) Text() string { return s.text }

// URL returns the shared URL
func (s *ShareButton) URL() string { return s.url }

// Hashtags returns the hashtags without leading #
func (s *ShareButton) Hashtags() []string { return append([]string(nil), s.hashtags...) }

// Via returns the attributed screen name
func (s *ShareButton) Via() string { return s.via }

// Related returns the suggested accounts in insertion order
func (s *ShareButton) Related() []RelatedAccount { return append([]RelatedAccount(nil), s.related...) }

// SetText sets the prefilled Tweet text
func (s *ShareButton) SetText(text string) *ShareButton {
	if text = strings.TrimSpace(text); text != "" {
		s.text = text
	}
	return s
}

// SetURL sets the shared URL
func (s *ShareButton) SetURL(rawURL string) *ShareButton {
	rawURL = strings.TrimSpace(rawURL)
	if validate.AbsoluteURL(rawURL) {
		s.url = rawURL
	}
	return s
}

// AddHashtags appends hashtags, skipping invalid and repeated ones
func (s *ShareButton) AddHashtags(tags ...string) *ShareButton {
	for _, tag := range tags {
		tag = validate.CleanHashtag(tag)
		if tag == "" {
			continue
		}
		duplicate := false
		for _, existing := range s.hashtags {
			if strings.EqualFold(existing, tag) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			s.hashtags = append(s.hashtags, tag)
		}
	}
	return s
}

// SetVia attributes the Tweet to a screen name
func (s *ShareButton) SetVia(screenName string) *ShareButton {
	if name := validate.CleanScreenName(screenName); name != "" {
		s.via = name
	}
	return s
}

// AddRelated suggests an account to follow after sharing.
// Adding an account again replaces its description.
func (s *ShareButton) AddRelated(screenName, description string) *ShareButton {
	name := validate.CleanScreenName(screenName)
	if name == "" {
		return s
	}
	description = strings.TrimSpace(description)
	for i, r := range s.related {
		if strings.EqualFold(r.ScreenName, name) {
			s.related[i].Description = description
			return s
		}
	}
	s.related = append(s.related, RelatedAccount{ScreenName: name, Description: description})
	return s
}

// SetSize selects the medium or large button
func (s *ShareButton) SetSize(size string) *ShareButton {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "large":
		s.large = true
	case "medium":
		s.large = false
	}
	return s
}

// SetCount positions the share count box
func (s *ShareButton) SetCount(count string) *ShareButton {
	if validate.Count(count) {
		s.count = count
	}
	return s
}

func (s *ShareButton) relatedValue() string {
	parts := make([]string, 0, len(s.related))
	for _, r := range s.related {
		if r.Description != "" {
			parts = append(parts, r.ScreenName+":"+r.Description)
		} else {
			parts = append(parts, r.ScreenName)
		}
	}
	return strings.Join(parts, ",")
}

// intentParams holds the parameters shared by the data-* attributes and the intent URL
func (s *ShareButton) intentParams() *params.Params {
	p := params.New()
	if s.text != "" {
		p.Set("text", s.text)
	}
	if s.url != "" {
		p.Set("url", s.url)
	}
	if len(s.hashtags) > 0 {
		p.Set("hashtags", strings.Join(s.hashtags, ","))
	}
	if s.via != "" {
		p.Set("via", s.via)
	}
	if len(s.related) > 0 {
		p.Set("related", s.relatedValue())
	}
	return p
}

// AttributeMap returns the data-* attributes for widgets.js
func (s *ShareButton) AttributeMap() *params.Params {
	p := s.intentParams()
	if s.large {
		p.Set("size", "large")
	}
	if s.count != "" && s.count != "none" {
		p.Set("count", s.count)
	}
	return p
}

// IntentURL returns the Tweet intent used as the no-JavaScript fallback
func (s *ShareButton) IntentURL() string {
	p := s.intentParams()
	if p.Len() == 0 {
		return intentBaseURL + "tweet"
	}
	return intentBaseURL + "tweet?" + p.Query()
}
