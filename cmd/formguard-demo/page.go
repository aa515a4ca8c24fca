package main

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type pageParams struct {
	Title     string
	Message   string
	FieldName string
	Token     string
}

// page renders the demo form. An empty Token renders a retry link instead of
// the form.
func page(p pageParams) templ.Component {
	return templ.FromGoHTML(pageTemplate, p)
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = c.Render(r.Context(), w)
}
