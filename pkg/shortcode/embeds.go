package shortcode

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

// Embed sources
const (
	SourceShortcode = "shortcode"
	SourceURL       = "url"
)

// Embed is a widget found in content, before rendering
type Embed struct {
	Source string
	// Raw is the shortcode text or the URL
	Raw    string
	Line   int
	Widget widgets.Widget
}

// Embeds lists the widgets Apply would render, in document order.
// Shortcodes that do not build a widget, such as twitter_tracking, are skipped.
func Embeds(content string) []Embed {
	var found []Embed
	for _, sc := range Parse(content) {
		if sc.Escaped {
			continue
		}
		w, ok := Widget(sc)
		if !ok {
			continue
		}
		found = append(found, Embed{
			Source: SourceShortcode,
			Raw:    content[sc.Start:sc.End],
			Line:   strings.Count(content[:sc.Start], "\n") + 1,
			Widget: w,
		})
	}

	for i, line := range strings.Split(content, "\n") {
		rawURL, ok := StandaloneURL(line)
		if !ok {
			continue
		}
		if w, ok := widgets.Resolve(rawURL); ok {
			found = append(found, Embed{Source: SourceURL, Raw: rawURL, Line: i + 1, Widget: w})
		}
	}

	slices.SortStableFunc(found, func(a, b Embed) int { return cmp.Compare(a.Line, b.Line) })
	return found
}

// Known reports whether name is one of the built-in shortcodes
func Known(name string) bool {
	_, ok := builders[name]
	return ok || name == trackingName
}

// StripEmbeds removes built-in shortcodes and stand-alone embed URL lines from content,
// leaving the prose around them.
func StripEmbeds(content string) string {
	content = Replace(content, Known, func(Shortcode) string { return "" })

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if rawURL, ok := StandaloneURL(line); ok {
			if _, ok := widgets.Resolve(rawURL); ok {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
