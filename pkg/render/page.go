package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"sync"

	"github.com/lepinkainen/embed-forge/pkg/tracking"
)

// Script URLs loaded by rendered widgets
const (
	TwitterWidgetsScript   = "https://platform.twitter.com/widgets.js"
	VineEmbedScript        = "https://platform.vine.co/static/scripts/embed.js"
	PeriscopeWidgetsScript = "https://platform.periscope.tv/widgets.js"
)

// Page is the state of a single page render: the scripts its widgets need and its tracking IDs
type Page struct {
	mu       sync.Mutex
	scripts  []string
	seen     map[string]bool
	tracking *tracking.Accumulator
	flushed  bool
}

// NewPage returns an empty page
func NewPage() *Page {
	return &Page{
		seen:     make(map[string]bool),
		tracking: tracking.New(),
	}
}

// RequireScript records that src must be loaded once in the footer
func (p *Page) RequireScript(src string) {
	if src == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seen[src] {
		return
	}
	p.seen[src] = true
	p.scripts = append(p.scripts, src)
}

// Scripts returns the required scripts in the order they were first requested
func (p *Page) Scripts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.scripts...)
}

// Tracking returns the page's conversion tracking accumulator
func (p *Page) Tracking() *tracking.Accumulator {
	return p.tracking
}

// Flushed reports whether Footer has already been rendered
func (p *Page) Flushed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushed
}

// footer renders the script tags and tracking pixels once; later calls return ""
func (p *Page) footer(tmpl *template.Template) template.HTML {
	p.mu.Lock()
	if p.flushed {
		p.mu.Unlock()
		return ""
	}
	p.flushed = true
	scripts := p.scripts
	p.mu.Unlock()

	data := struct {
		Scripts  []string
		Tracking template.HTML
	}{
		Scripts:  scripts,
		Tracking: p.tracking.Flush(),
	}
	if len(data.Scripts) == 0 && data.Tracking == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "footer", data); err != nil {
		slog.Warn("Failed to render page footer", "error", err)
		return ""
	}
	return template.HTML(buf.String())
}
