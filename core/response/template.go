package response

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/lrucache/core/handler"
)

// ErrNilTemplate is returned when a template response is built without a template.
var ErrNilTemplate = errors.New("template is nil")

// Template renders tmpl with data as text/html with 200 OK status.
// The output is buffered so a failing template writes nothing.
func Template(tmpl *template.Template, data any) handler.Response {
	return TemplateName(tmpl, "", data)
}

// TemplateName renders the named template from a template collection.
// An empty name executes tmpl itself.
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return ErrNilTemplate
		}

		var buf bytes.Buffer
		var err error
		if name != "" {
			err = tmpl.ExecuteTemplate(&buf, name, data)
		} else {
			err = tmpl.Execute(&buf, data)
		}
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(buf.Bytes())
		return err
	}
}
