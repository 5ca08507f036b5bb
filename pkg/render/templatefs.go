package render

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"

	"github.com/lepinkainen/embed-forge/templates"
)

var (
	// templateOverrideFS points at the developer-provided filesystem (usually the local templates directory).
	templateOverrideFS fs.FS = os.DirFS("templates")
	// templateFallbackFS is the embedded filesystem baked into the binary.
	templateFallbackFS fs.FS = templates.EmbeddedTemplates
)

// SetTemplateOverrideFS switches the filesystem whose *.tmpl files replace the embedded definitions.
// A nil filesystem disables overrides.
func SetTemplateOverrideFS(f fs.FS) {
	templateOverrideFS = f
}

// SetTemplateFallbackFS overrides the embedded filesystem.
func SetTemplateFallbackFS(f fs.FS) {
	templateFallbackFS = f
}

// LoadTemplates parses the embedded templates, then any override templates on top of them
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("embed-forge").Funcs(templateFuncs()).ParseFS(templateFallbackFS, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}

	if templateOverrideFS == nil {
		return tmpl, nil
	}

	matches, err := fs.Glob(templateOverrideFS, "*.tmpl")
	if err != nil || len(matches) == 0 {
		return tmpl, nil
	}

	slog.Debug("Loading template overrides", "files", matches)
	tmpl, err = tmpl.ParseFS(templateOverrideFS, matches...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template overrides: %w", err)
	}
	return tmpl, nil
}
