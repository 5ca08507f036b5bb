package shortcode

import (
	"context"
	"html/template"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/render"
	"github.com/lepinkainen/embed-forge/pkg/site"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

const trackingName = "twitter_tracking"

// Filter expands shortcodes and stand-alone embed URLs in content
type Filter struct {
	registry *Registry
	renderer *render.Renderer
}

// NewFilter creates a filter with every widget shortcode and twitter_tracking registered
func NewFilter(renderer *render.Renderer) *Filter {
	f := &Filter{registry: NewRegistry(), renderer: renderer}

	for name, build := range builders {
		def := &Definition{
			Name:        name,
			Description: descriptions[name],
			Handler: func(ctx context.Context, page *render.Page, sc Shortcode) template.HTML {
				w, ok := build(sc)
				if !ok {
					slog.Debug("Invalid shortcode", "shortcode", sc.Name, "attrs", sc.Attrs)
					return ""
				}
				return renderer.Render(ctx, page, w)
			},
		}
		if err := f.registry.Register(def); err != nil {
			slog.Warn("Failed to register shortcode", "shortcode", name, "error", err)
		}
	}

	tracking := &Definition{
		Name:        trackingName,
		Description: "Conversion tracking pixel",
		Handler: func(_ context.Context, page *render.Page, sc Shortcode) template.HTML {
			values := []string{sc.Attrs["id"], sc.Attrs["ids"]}
			for n := 0; ; n++ {
				value, ok := sc.Attrs[strconv.Itoa(n)]
				if !ok {
					break
				}
				values = append(values, value)
			}

			var ids []string
			for _, value := range values {
				ids = append(ids, strings.FieldsFunc(value, isListSeparator)...)
			}
			page.Tracking().Add(ids...)
			return ""
		},
	}
	if err := f.registry.Register(tracking); err != nil {
		slog.Warn("Failed to register shortcode", "shortcode", tracking.Name, "error", err)
	}

	return f
}

// Registry exposes the registered shortcodes
func (f *Filter) Registry() *Registry {
	return f.registry
}

// Renderer returns the renderer shortcodes and URLs are rendered with
func (f *Filter) Renderer() *render.Renderer {
	return f.renderer
}

// Apply expands shortcodes, then renders every line that holds nothing but an embeddable URL.
// Lines whose embed renders nothing are kept as they were.
func (f *Filter) Apply(ctx context.Context, page *render.Page, content string) string {
	content = Replace(content, f.registry.Has, func(sc Shortcode) string {
		return string(f.registry.Render(ctx, page, sc))
	})

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		rawURL, ok := StandaloneURL(line)
		if !ok {
			continue
		}
		w, ok := widgets.Resolve(rawURL)
		if !ok {
			continue
		}
		if out := f.renderer.Render(ctx, page, w); out != "" {
			lines[i] = string(out)
		}
	}
	return strings.Join(lines, "\n")
}

// ApplyPost filters the post content, queues its tracking IDs and appends
// the post's Tweet button when the site enables it
func (f *Filter) ApplyPost(ctx context.Context, page *render.Page, post site.Post) string {
	page.Tracking().Add(post.Meta.TrackingIDs...)

	content := f.Apply(ctx, page, post.Content)

	options := f.renderer.Options()
	if options.ShareButton {
		if button := f.renderer.Render(ctx, page, site.ShareButton(post, options)); button != "" {
			content += "\n" + string(button)
		}
	}
	return content
}

// StandaloneURL returns the URL when line holds only an http(s) URL, optionally wrapped in <p>
func StandaloneURL(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") {
		s = strings.TrimSpace(s[len("<p>") : len(s)-len("</p>")])
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return "", false
	}
	if strings.ContainsAny(s, " \t<>\"'") {
		return "", false
	}
	return s, true
}

func isListSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\n'
}
