package render

import (
	"html/template"
	"strings"

	"github.com/lepinkainen/embed-forge/pkg/params"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"dataAttrs": dataAttrs,
	}
}

// dataAttrs renders data-* attributes, each preceded by a space
func dataAttrs(attrs []params.Attribute) template.HTMLAttr {
	var b strings.Builder
	for _, attr := range attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(attr.Value))
		b.WriteByte('"')
	}
	return template.HTMLAttr(b.String())
}
