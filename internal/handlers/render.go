package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/ubermelon/shop/internal/format"
)

// Renderer executes page templates and converts item descriptions from
// markdown to sanitized HTML.
type Renderer struct {
	templates *template.Template
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewRenderer discovers and parses every .tmpl file under dir.
func NewRenderer(dir string) (*Renderer, error) {
	funcMap := template.FuncMap{
		"price": format.Price,
	}

	// ParseGlob doesn't support **, so walk the tree ourselves.
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("handlers: discover templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("handlers: no templates found under %s", dir)
	}

	tmpl, err := template.New("_root").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("handlers: parse templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		markdown:  goldmark.New(),
		sanitizer: bluemonday.UGCPolicy(),
	}, nil
}

// Render executes the named page template.
func (rd *Renderer) Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// Markdown converts markdown source to sanitized HTML.
func (rd *Renderer) Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := rd.markdown.Convert([]byte(src), &buf); err != nil {
		// Fall back to the raw text, escaped by the template engine.
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(rd.sanitizer.SanitizeBytes(buf.Bytes()))
}
