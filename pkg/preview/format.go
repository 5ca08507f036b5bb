// Package preview provides an interactive preview of the embeds in a document using Bubble Tea TUI.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/render"
	"github.com/lepinkainen/embed-forge/pkg/shortcode"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

// Item is one embed of the document with its rendered output
type Item struct {
	Embed      shortcode.Embed
	HTML       string
	Scripts    []string
	CacheKey   string
	Attributes []params.Attribute
}

// Collect renders every embed in content. Each embed is rendered on its own page
// so the scripts it needs can be shown separately.
func Collect(ctx context.Context, renderer *render.Renderer, content string) []Item {
	embeds := shortcode.Embeds(content)
	items := make([]Item, 0, len(embeds))

	for _, embed := range embeds {
		page := render.NewPage()
		html := renderer.Render(ctx, page, embed.Widget)

		item := Item{
			Embed:      embed,
			HTML:       string(html),
			Scripts:    page.Scripts(),
			Attributes: embed.Widget.AttributeMap().DataAttributes(),
		}
		if o, ok := embed.Widget.(widgets.OEmbedder); ok {
			if req, ok := renderer.RequestFor(o, ""); ok {
				item.CacheKey = req.Key()
			}
		}
		items = append(items, item)
	}
	return items
}

// wrapText wraps text to the specified width, breaking at word boundaries when possible
func wrapText(text string, width int) string {
	if width <= 0 {
		width = 70
	}

	var result strings.Builder
	var line strings.Builder
	lineLen := 0

	words := strings.Fields(text)
	for i, word := range words {
		wordLen := len(word)

		if lineLen > 0 && lineLen+1+wordLen > width {
			result.WriteString(line.String())
			result.WriteString("\n")
			line.Reset()
			lineLen = 0
		}

		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}

		line.WriteString(word)
		lineLen += wordLen

		if i == len(words)-1 {
			result.WriteString(line.String())
		}
	}

	return result.String()
}

// FormatCompactListItem formats a single embed in compact list format
// Example: " 1. L3    [tweet     ] https://twitter.com/jack/status/20"
func FormatCompactListItem(index int, item Item) string {
	raw := item.Embed.Raw
	const maxRawLength = 70
	if len(raw) > maxRawLength {
		raw = raw[:maxRawLength-3] + "..."
	}

	status := ""
	if item.HTML == "" {
		status = " (renders nothing)"
	}
	return fmt.Sprintf("%2d. L%-4d [%-10s] %s%s", index+1, item.Embed.Line, item.Embed.Widget.Kind(), raw, status)
}

// FormatDetailedItem formats a single embed with all metadata
func FormatDetailedItem(item Item) string {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")
	b.WriteString(fmt.Sprintf("Kind: %s\n", item.Embed.Widget.Kind()))
	b.WriteString(fmt.Sprintf("Source: %s (line %d)\n", item.Embed.Source, item.Embed.Line))
	b.WriteString(fmt.Sprintf("Raw: %s\n", wrapText(item.Embed.Raw, 70)))

	if item.CacheKey != "" {
		b.WriteString(fmt.Sprintf("Cache key: %s\n", item.CacheKey))
	}

	if len(item.Attributes) > 0 {
		b.WriteString("\nAttributes:\n")
		for _, attr := range item.Attributes {
			b.WriteString(fmt.Sprintf("  %s=%q\n", attr.Name, attr.Value))
		}
	}

	if len(item.Scripts) > 0 {
		b.WriteString(fmt.Sprintf("\nScripts: %s\n", strings.Join(item.Scripts, ", ")))
	}

	if item.HTML == "" {
		b.WriteString("\nRenders nothing\n")
	}

	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")

	return b.String()
}

// FormatHTMLItem returns the rendered markup of an embed, wrapped for the terminal
func FormatHTMLItem(item Item) string {
	if item.HTML == "" {
		return "Renders nothing"
	}
	return wrapMarkup(item.HTML, 80)
}

// wrapMarkup breaks long lines at spaces or tag ends without touching the tags themselves
func wrapMarkup(markup string, width int) string {
	var result strings.Builder

	for _, line := range strings.Split(markup, "\n") {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		remaining := line
		for len(remaining) > width {
			breakPoint := width
			for i := width; i > width-20 && i > 0; i-- {
				if remaining[i] == ' ' || remaining[i] == '>' {
					breakPoint = i + 1
					break
				}
			}
			result.WriteString(remaining[:breakPoint])
			result.WriteString("\n")
			remaining = remaining[breakPoint:]
		}
		if remaining != "" {
			result.WriteString(remaining)
			result.WriteString("\n")
		}
	}

	return result.String()
}
