// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// Pages lists the templates a TemplateRegistry can render. Each page is
// parsed after base.html so its "title" block overrides the default.
var Pages = []string{
	"home.html",
	"blog-list.html",
	"blog-post.html",
	"post-not-found.html",
	"login.html",
	"admin.html",
	"error.html",
}

type TemplateRegistry struct {
	templates map[string]*template.Template
}

func NewTemplateRegistry() (*TemplateRegistry, error) {
	t := make(map[string]*template.Template, len(Pages))
	for _, page := range Pages {
		tmpl, err := template.ParseFS(templates, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		t[page] = tmpl
	}
	return &TemplateRegistry{templates: t}, nil
}

func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return errors.New("template not found: " + name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
