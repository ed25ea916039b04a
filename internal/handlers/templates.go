package handlers

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const indexTemplate = "index.tmpl"

// Templates parses the HTML templates served by the form handlers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.tmpl")
}
