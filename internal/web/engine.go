// Package web renders the browser pages. Engine implements fiber.Views over
// html/template with every page wrapped in the shared layout.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

type Engine struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

func NewEngine() *Engine {
	return &Engine{}
}

var funcs = template.FuncMap{
	"rating": func(r float64) string {
		return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", r), "0"), ".")
	},
	"lower": strings.ToLower,
}

// Load parses the layout together with each page template.
func (e *Engine) Load() error {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

func (e *Engine) Render(out io.Writer, name string, binding interface{}, layout ...string) error {
	e.mu.RLock()
	tmpl, ok := e.pages[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(out, "layout", binding)
}
