package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/views"
)

const termsFile = "terms.md"

// Terms holds the terms document rendered once per language.
type Terms struct {
	docs map[string]template.HTML
}

// LoadTerms renders {lang}/terms.md from fsys for every language directory.
func LoadTerms(fsys fs.FS) (*Terms, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read terms: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	t := &Terms{docs: make(map[string]template.HTML)}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		src, err := fs.ReadFile(fsys, path.Join(e.Name(), termsFile))
		if err != nil {
			continue
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("render %s terms: %w", e.Name(), err)
		}
		t.docs[e.Name()] = template.HTML(buf.String())
	}
	if len(t.docs) == 0 {
		return nil, fmt.Errorf("no %s found", termsFile)
	}
	return t, nil
}

// For returns the document for lang and whether it exists.
func (t *Terms) For(lang string) (template.HTML, bool) {
	doc, ok := t.docs[lang]
	return doc, ok
}

func (t *Terms) show(c internal.Context) error {
	p := page(c)
	doc, ok := t.For(p.Lang)
	if !ok {
		return internal.ErrNotFound(c.T("error_page.not_found"))
	}
	return c.Render(http.StatusOK, views.TermsPage(views.TermsData{Page: p, Body: doc}))
}
