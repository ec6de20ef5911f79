package api

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

func LoadTemplates() (*template.Template, error) {
	return template.New("base").ParseFS(templatesFS, "templates/*.html")
}

// renderResult renders the result panel for rv into a string.
func renderResult(t *template.Template, rv resultView) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "result", rv); err != nil {
		return "", err
	}
	return buf.String(), nil
}
