// Package tracking collects conversion tracking IDs during a page render and emits the pixel markup once.
package tracking

import (
	"bytes"
	"html/template"
	"log/slog"
	"sync"

	"github.com/lepinkainen/embed-forge/pkg/validate"
	"github.com/lepinkainen/embed-forge/templates"
)

var pixelTemplate = template.Must(template.ParseFS(templates.EmbeddedTemplates, "tracking.tmpl"))

// Accumulator is a request-scoped, de-duplicating set of tracking IDs
type Accumulator struct {
	mu   sync.Mutex
	ids  []string
	seen map[string]bool
}

// New returns an empty accumulator
func New() *Accumulator {
	return &Accumulator{seen: make(map[string]bool)}
}

// Add validates and records ids, keeping the first occurrence of each.
// It returns the number of IDs added.
func (a *Accumulator) Add(ids ...string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	added := 0
	for _, raw := range ids {
		id := validate.CleanTrackingID(raw)
		if id == "" {
			slog.Debug("Ignoring invalid tracking ID", "id", raw)
			continue
		}
		if a.seen[id] {
			continue
		}
		a.seen[id] = true
		a.ids = append(a.ids, id)
		added++
	}
	return added
}

// IDs returns the pending IDs in insertion order
func (a *Accumulator) IDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.ids...)
}

// Len returns the number of pending IDs
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ids)
}

// Flush renders the tracking script and noscript pixels for the pending IDs and empties the accumulator.
// IDs already flushed are not emitted again. An empty accumulator renders nothing.
func (a *Accumulator) Flush() template.HTML {
	a.mu.Lock()
	ids := a.ids
	a.ids = nil
	a.mu.Unlock()

	if len(ids) == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := pixelTemplate.ExecuteTemplate(&buf, "tracking", ids); err != nil {
		slog.Warn("Failed to render tracking pixels", "error", err)
		return ""
	}
	return template.HTML(buf.String())
}
