// Package render turns a budget view into the HTML email body.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"reminder/internal/core"
	"reminder/web"
)

// ErrTemplate marks a missing template file or a placeholder that cannot be
// resolved against the view.
var ErrTemplate = errors.New("render: template error")

// DefaultTemplateName is the embedded template used when no override is given.
const DefaultTemplateName = "budget-email.html"

type Renderer struct {
	tmpl *template.Template
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"money": func(m core.Money) string { return m.String() },
		"date":  func(t time.Time) string { return t.Format("Mon, Jan 2 2006") },
	}
}

// New builds a renderer from the embedded default template.
func New() (*Renderer, error) {
	tmpl, err := template.New(DefaultTemplateName).
		Funcs(funcMap()).
		ParseFS(web.TemplatesFS, "templates/"+DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: parse embedded template: %v", ErrTemplate, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// NewFromFile builds a renderer from a template file on disk.
func NewFromFile(path string) (*Renderer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: template file %s: %v", ErrTemplate, path, err)
	}
	tmpl, err := template.New(filepath.Base(path)).Funcs(funcMap()).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrTemplate, path, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template against the view. Placeholders that do not
// resolve fail the render instead of printing blanks.
func (r *Renderer) Render(view core.View) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}
