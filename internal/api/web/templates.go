package web

import (
	"embed"
	"html/template"

	"github.com/djangocon/conference-site/internal/markup"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(markup.FuncMap()).ParseFS(templateFS, "templates/*.html"))
}
