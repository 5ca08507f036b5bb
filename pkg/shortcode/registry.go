package shortcode

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"slices"
	"sync"

	"github.com/lepinkainen/embed-forge/pkg/render"
)

// Handler renders one shortcode invocation
type Handler func(ctx context.Context, page *render.Page, sc Shortcode) template.HTML

// Definition contains metadata about a shortcode.
type Definition struct {
	Name        string
	Description string
	Handler     Handler
}

// Registry manages registered shortcodes.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]*Definition),
	}
}

// Register adds a shortcode to the registry.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.Name == "" || def.Handler == nil {
		return fmt.Errorf("invalid shortcode definition")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.Name]; exists {
		return fmt.Errorf("shortcode %s is already registered", def.Name)
	}

	r.definitions[def.Name] = def
	slog.Debug("Registered shortcode", "shortcode", def.Name, "description", def.Description)
	return nil
}

// Get retrieves a shortcode by name.
func (r *Registry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[name]
	if !exists {
		return nil, fmt.Errorf("shortcode %s not found", name)
	}
	return def, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.definitions[name]
	return exists
}

// List returns all registered shortcode names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render runs the handler of sc, or returns "" when it is not registered
func (r *Registry) Render(ctx context.Context, page *render.Page, sc Shortcode) template.HTML {
	def, err := r.Get(sc.Name)
	if err != nil {
		return ""
	}
	return def.Handler(ctx, page, sc)
}
