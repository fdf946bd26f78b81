package render

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/raveheart1/relnote/internal/note"
)

// templateContext is the root value a user template executes against.
type templateContext struct {
	Note    note.ReleaseNote
	Options Options
}

// templateRenderer renders the note through a user-supplied
// text/template with the sprig function map available, e.g.
//
//	{{range .Note.Groups}}{{.Category.Title | upper}}
//	{{range .Entries}} * {{.Description}}
//	{{end}}{{end}}
type templateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses a user template. The parsed template is
// reused across renders, so a registry with a template format stays
// safe for concurrent generation runs.
func NewTemplateRenderer(name, text string) (Renderer, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %q: %w", name, err)
	}
	return templateRenderer{tmpl: tmpl}, nil
}

func (r templateRenderer) Render(n note.ReleaseNote, w io.Writer, opts Options) error {
	return r.tmpl.Execute(w, templateContext{Note: n, Options: opts})
}
