// Package render turns widget configuration objects into HTML.
//
// Widgets that have an oEmbed representation are rendered from the provider's markup when the site
// prefers oEmbed. Everything else renders JavaScript-enhanced fallback markup built from the widget's
// data attributes. Renders that produce nothing return "".
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/lepinkainen/embed-forge/pkg/oembed"
	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/site"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

const defaultVineWidth = 600

// Renderer renders widgets for a site
type Renderer struct {
	fetcher   *oembed.Fetcher
	options   site.Options
	templates *template.Template
}

// New creates a renderer with the embedded (or overridden) templates.
// A nil fetcher disables oEmbed rendering.
func New(fetcher *oembed.Fetcher, options site.Options) (*Renderer, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	return &Renderer{fetcher: fetcher, options: options, templates: tmpl}, nil
}

// Options returns the site options the renderer applies
func (r *Renderer) Options() site.Options {
	return r.options
}

// Fetcher returns the oEmbed fetcher, or nil when oEmbed rendering is disabled
func (r *Renderer) Fetcher() *oembed.Fetcher {
	return r.fetcher
}

// Footer renders the page's scripts and tracking pixels, once per page
func (r *Renderer) Footer(page *Page) template.HTML {
	return page.footer(r.templates)
}

// Render returns the HTML for w and records the scripts it needs on page
func (r *Renderer) Render(ctx context.Context, page *Page, w widgets.Widget) template.HTML {
	if w == nil {
		return ""
	}

	r.applyTheme(w)

	if o, ok := w.(widgets.OEmbedder); ok && r.options.PreferOEmbed && r.fetcher != nil {
		req, _ := r.RequestFor(o, "")
		html := r.fetcher.Fetch(ctx, req)
		if html == "" {
			slog.Debug("oEmbed rendered nothing", "kind", w.Kind())
			return ""
		}
		page.RequireScript(scriptFor(w))
		return template.HTML(html)
	}

	out, err := r.fallback(w)
	if err != nil {
		slog.Warn("Failed to render widget", "kind", w.Kind(), "error", err)
		return ""
	}
	if out != "" {
		page.RequireScript(scriptFor(w))
	}
	return out
}

// RequestFor returns the oEmbed request Render issues for w, so callers can find its cache entry.
// The site theme is applied to w first. A non-empty lang replaces the site language.
// It reports false when oEmbed rendering is disabled.
func (r *Renderer) RequestFor(w widgets.OEmbedder, lang string) (oembed.Request, bool) {
	if r.fetcher == nil {
		return oembed.Request{}, false
	}
	r.applyTheme(w)
	if lang == "" {
		lang = r.options.Language()
	}
	return r.fetcher.RequestFor(w, lang), true
}

func (r *Renderer) applyTheme(w widgets.Widget) {
	if themed, ok := w.(widgets.Themed); ok {
		themed.Theming().Fill(r.options.ThemeDefaults())
	}
}

// view is the data passed to the fallback templates
type view struct {
	Class      string
	Href       string
	Text       string
	Attributes []params.Attribute
	Width      int
	Height     int
}

func (r *Renderer) fallback(w widgets.Widget) (template.HTML, error) {
	name, v, ok := r.viewFor(w)
	if !ok {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// attributes returns the widget's data attributes with the site language and DNT preference added
func (r *Renderer) attributes(w widgets.Widget) []params.Attribute {
	attrs := w.AttributeMap()
	if lang := r.options.Language(); lang != "" {
		attrs.Set("lang", lang)
	}
	if r.options.DNT {
		attrs.Set("dnt", true)
	}
	return attrs.DataAttributes()
}

func (r *Renderer) viewFor(w widgets.Widget) (string, view, bool) {
	switch t := w.(type) {
	case *widgets.Tweet:
		return "tweet", view{Href: t.OEmbedURL(), Text: t.OEmbedURL(), Attributes: r.attributes(w)}, true
	case *widgets.Profile:
		return "anchor", view{Class: "twitter-timeline", Href: t.OEmbedURL(), Text: "Tweets by @" + t.ScreenName(), Attributes: r.attributes(w)}, true
	case *widgets.List:
		return "anchor", view{Class: "twitter-timeline", Href: t.OEmbedURL(), Text: "Tweets from a list", Attributes: r.attributes(w)}, true
	case *widgets.Collection:
		class := "twitter-timeline"
		if t.Grid() {
			class = "twitter-grid"
		}
		return "anchor", view{Class: class, Href: t.OEmbedURL(), Text: "Tweets from a collection", Attributes: r.attributes(w)}, true
	case *widgets.Search:
		text := "Tweets"
		if t.Query() != "" {
			text = "Tweets about " + t.Query()
		}
		return "anchor", view{Class: "twitter-timeline", Href: t.SearchURL(), Text: text, Attributes: r.attributes(w)}, true
	case *widgets.Moment:
		return "anchor", view{Class: "twitter-moment", Href: t.OEmbedURL(), Text: "Moment", Attributes: r.attributes(w)}, true
	case *widgets.FollowButton:
		return "anchor", view{Class: "twitter-follow-button", Href: t.IntentURL(), Text: "Follow @" + t.ScreenName(), Attributes: r.attributes(w)}, true
	case *widgets.ShareButton:
		return "anchor", view{Class: "twitter-share-button", Href: t.IntentURL(), Text: "Tweet", Attributes: r.attributes(w)}, true
	case *widgets.Vine:
		width := t.Width()
		if width == 0 {
			width = defaultVineWidth
		}
		return "vine", view{Href: t.EmbedURL(), Width: width, Height: width}, true
	case *widgets.PeriscopeOnAir:
		return "anchor", view{Class: "periscope-on-air", Href: t.ProfileURL(), Text: "@" + t.Username(), Attributes: t.AttributeMap().DataAttributes()}, true
	}
	return "", view{}, false
}

func scriptFor(w widgets.Widget) string {
	switch w.Kind() {
	case widgets.KindVine:
		return VineEmbedScript
	case widgets.KindPeriscope:
		return PeriscopeWidgetsScript
	}
	return TwitterWidgetsScript
}
