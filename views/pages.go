package views

import (
	"html/template"

	"github.com/a-h/templ"
)

// TermsData is the terms-and-conditions page.
type TermsData struct {
	Page
	Body template.HTML
}

// Title is the document title.
func (d TermsData) Title() string {
	return d.Tr("terms_page.title")
}

// TermsPage renders the terms document inside the layout.
func TermsPage(d TermsData) templ.Component {
	return component("terms.html", "layout", d)
}

// ErrorData describes an error page.
type ErrorData struct {
	Page
	Code    int
	Message string
}

// Title is the document title.
func (d ErrorData) Title() string {
	return d.Tr("error_page.title")
}

// ErrorPage renders a full error page.
func ErrorPage(d ErrorData) templ.Component {
	return component("error.html", "layout", d)
}

// ErrorContent renders only the error block, for htmx requests.
func ErrorContent(d ErrorData) templ.Component {
	return component("error.html", "content", d)
}
