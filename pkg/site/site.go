// Package site holds the site-wide options and the per-post values the embed renderer reads.
package site

import (
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/validate"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

// Options are the site-wide settings
type Options struct {
	// Username is the site's Twitter account, used for card attribution and share buttons
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	UserID   string `json:"user_id" yaml:"user_id" mapstructure:"user_id"`

	Theme       string `json:"theme" yaml:"theme" mapstructure:"theme"`
	LinkColor   string `json:"link_color" yaml:"link_color" mapstructure:"link_color"`
	BorderColor string `json:"border_color" yaml:"border_color" mapstructure:"border_color"`

	Lang         string `json:"lang" yaml:"lang" mapstructure:"lang"`
	DNT          bool   `json:"dnt" yaml:"dnt" mapstructure:"dnt"`
	PreferOEmbed bool   `json:"prefer_oembed" yaml:"prefer_oembed" mapstructure:"prefer_oembed"`
	// ShareButton appends a Tweet button to filtered posts
	ShareButton bool `json:"share_button" yaml:"share_button" mapstructure:"share_button"`
}

// DefaultOptions returns options that render embeds through oEmbed with the widget defaults
func DefaultOptions() Options {
	return Options{PreferOEmbed: true}
}

// SiteUsername returns the validated site account, or ""
func (o Options) SiteUsername() string {
	return validate.CleanScreenName(o.Username)
}

// SiteUserID returns the validated site account ID, or ""
func (o Options) SiteUserID() string {
	id := strings.TrimSpace(o.UserID)
	if !validate.SnowflakeID(id) {
		return ""
	}
	return id
}

// Language returns the validated widget language, or ""
func (o Options) Language() string {
	return validate.CleanLang(o.Lang)
}

// ThemeDefaults returns the site theme as widget defaults
func (o Options) ThemeDefaults() widgets.ThemeOptions {
	return widgets.NewThemeOptions(o.Theme, o.LinkColor, o.BorderColor)
}

// Image is a post image with its intrinsic size
type Image struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Alt    string `json:"alt" yaml:"alt"`
}

// Meta is the per-post Twitter customization
type Meta struct {
	ShareText       string   `json:"share_text" yaml:"share_text"`
	Hashtags        []string `json:"hashtags" yaml:"hashtags"`
	CardTitle       string   `json:"card_title" yaml:"card_title"`
	CardDescription string   `json:"card_description" yaml:"card_description"`
	// TrackingIDs are conversion tracking IDs fired when the post is viewed
	TrackingIDs []string `json:"tracking_ids" yaml:"tracking_ids"`
}

// Post is a single piece of content
type Post struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Permalink      string `json:"permalink" yaml:"permalink"`
	Excerpt        string `json:"excerpt" yaml:"excerpt"`
	Content        string `json:"content" yaml:"content"`
	AuthorUsername string `json:"author_username" yaml:"author_username"`
	FeaturedImage  *Image `json:"featured_image,omitempty" yaml:"featured_image,omitempty"`
	Meta           Meta   `json:"meta" yaml:"meta"`
}

// ShareButton builds the Tweet button for a post.
// The text is the share text from the post meta, falling back to the title.
func ShareButton(post Post, options Options) *widgets.ShareButton {
	text := strings.TrimSpace(post.Meta.ShareText)
	if text == "" {
		text = post.Title
	}

	button := widgets.NewShareButton().
		SetText(text).
		SetURL(post.Permalink).
		AddHashtags(post.Meta.Hashtags...)

	if via := options.SiteUsername(); via != "" {
		button.SetVia(via)
	}
	if author := validate.CleanScreenName(post.AuthorUsername); author != "" && !strings.EqualFold(author, options.SiteUsername()) {
		button.AddRelated(author, "")
	}
	return button
}
