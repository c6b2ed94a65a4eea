package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formrelay/pkg/i18n"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static holds the stylesheet and other assets under "static/".
var Static fs.FS = staticFS

// TranslateFunc looks up a key in the request language.
// internal.Context.T has this signature.
type TranslateFunc func(key string, placeholders ...i18n.M) string

// Page is the layout data every page carries.
type Page struct {
	T         TranslateFunc
	Lang      string
	Languages []string
	// Path is the current path, used for the language switcher links.
	Path string
}

// Tr translates key, returning it unchanged without a translator.
func (p Page) Tr(key string) string {
	if p.T == nil {
		return key
	}
	return p.T(key)
}

var funcs = template.FuncMap{
	"langURL": func(p, lang string) string {
		return p + "?lang=" + lang
	},
	"upper": strings.ToUpper,
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"form.html", "terms.html", "error.html"} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			path.Join("templates", name),
		))
	}
}

// component executes the named template from the set of page.
func component(page, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		tmpl, ok := pages[page]
		if !ok {
			return fmt.Errorf("views: unknown page %q", page)
		}
		return tmpl.ExecuteTemplate(w, name, data)
	})
}
