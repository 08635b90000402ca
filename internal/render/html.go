package render

import (
	"html/template"
	"path/filepath"
	"strings"

	"github.com/Davlis/Invoice-SVC/internal/invoices"
)

// HTMLRenderer executes html/template files. The file is parsed on every call so template
// edits are picked up without a restart.
type HTMLRenderer struct{}

// NewHTMLRenderer returns a renderer for html/template files.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render parses the template at path and executes it with data.
func (r *HTMLRenderer) Render(path string, data invoices.Context) (string, error) {
	tmpl, err := template.New(filepath.Base(path)).ParseFiles(path)
	if err != nil {
		return "", &RenderError{Template: path, Err: err}
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, map[string]interface{}(data)); err != nil {
		return "", &RenderError{Template: path, Err: err}
	}
	return sb.String(), nil
}
