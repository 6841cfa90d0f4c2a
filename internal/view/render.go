package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names accepted by Renderer.Render.
const (
	TemplateList           = "list.html"
	TemplateLogos          = "logos.html"
	TemplateStartUpForm    = "startup_form.html"
	TemplateInternshipForm = "internship_form.html"
)

// Renderer executes the embedded page templates. Each page is parsed
// together with the shared layout and components.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{TemplateList, TemplateLogos, TemplateStartUpForm, TemplateInternshipForm} {
		t, err := template.New(name).Funcs(funcs(nil)).ParseFS(templateFS,
			"templates/layout.html", "templates/components.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("view.NewRenderer: %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name with data, translating through p.
func (r *Renderer) Render(w io.Writer, name string, p *message.Printer, data any) error {
	base, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view.Renderer.Render: unknown page %q", name)
	}
	t, err := base.Clone()
	if err != nil {
		return fmt.Errorf("view.Renderer.Render: %w", err)
	}
	if err := t.Funcs(funcs(p)).ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("view.Renderer.Render: %s: %w", name, err)
	}
	return nil
}

func funcs(p *message.Printer) template.FuncMap {
	return template.FuncMap{
		"t": func(key string) string {
			if p == nil {
				return key
			}
			return p.Sprintf(key)
		},
		"join": strings.Join,
	}
}
