package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded page templates. Embedding keeps the binary
// and the tests independent of the working directory.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
