package widgets

import (
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/validate"
)

const intentBaseURL = "https://twitter.com/intent/"

// FollowButton is a Follow button for one account
type FollowButton struct {
	screenName     string
	hideCount      bool
	hideScreenName bool
	large          bool
}

// NewFollowButton creates a Follow button. A leading @ is accepted.
func NewFollowButton(screenName string) (*FollowButton, bool) {
	name := validate.CleanScreenName(screenName)
	if name == "" {
		return nil, false
	}
	return &FollowButton{screenName: name}, true
}

// FollowButtonFromMap builds a Follow button from untrusted input
func FollowButtonFromMap(m map[string]any) (*FollowButton, bool) {
	name, ok := stringValue(m["screen_name"])
	if !ok {
		return nil, false
	}
	f, ok := NewFollowButton(name)
	if !ok {
		return nil, false
	}
	if b, ok := boolValue(m["show_count"]); ok {
		f.SetShowCount(b)
	}
	if b, ok := boolValue(m["show_screen_name"]); ok {
		f.SetShowScreenName(b)
	}
	if s, ok := stringValue(m["size"]); ok {
		f.SetSize(s)
	}
	return f, true
}

// Kind implements Widget
func (f *FollowButton) Kind() string { return KindFollow }

// ScreenName returns the account to follow
func (f *FollowButton) ScreenName() string { return f.screenName }

// SetShowCount toggles the follower count
func (f *FollowButton) SetShowCount(show bool) *FollowButton {
	f.hideCount = !show
	return f
}

// SetShowScreenName toggles the screen name in the button label
func (f *FollowButton) SetShowScreenName(show bool) *FollowButton {
	f.hideScreenName = !show
	return f
}

// SetSize selects the medium or large button
func (f *FollowButton) SetSize(size string) *FollowButton {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "large":
		f.large = true
	case "medium":
		f.large = false
	}
	return f
}

// AttributeMap returns the data-* attributes for widgets.js
func (f *FollowButton) AttributeMap() *params.Params {
	p := params.New().Set("screen-name", f.screenName)
	if f.hideCount {
		p.Set("show-count", false)
	}
	if f.hideScreenName {
		p.Set("show-screen-name", false)
	}
	if f.large {
		p.Set("size", "large")
	}
	return p
}

// IntentURL returns the follow intent used as the no-JavaScript fallback
func (f *FollowButton) IntentURL() string {
	return intentBaseURL + "follow?" + params.New().Set("screen_name", f.screenName).Query()
}
