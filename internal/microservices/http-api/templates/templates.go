package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse returns every page template, each addressable by its file name (e.g. "movies.html").
func Parse() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
