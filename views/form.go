package views

import (
	"html/template"

	"github.com/a-h/templ"
)

// FormID is the element id htmx targets when swapping the form.
const FormID = "contact-form"

// FormValues are the values shown in the form inputs.
type FormValues struct {
	Name        string
	Surname     string
	Tel         string
	Email       string
	AcceptTerms bool
}

// FormErrors maps a field name to its first validation message.
type FormErrors map[string]string

// FormData is everything the form needs to render.
type FormData struct {
	Page
	Values FormValues
	Errors FormErrors
	Banner *Banner
	// CSRFField is the hidden token input, empty when CSRF is off.
	CSRFField template.HTML
	Action    string
}

// FormPage renders the full page with the form.
func FormPage(d FormData) templ.Component {
	return component("form.html", "layout", d.normalize())
}

// Form renders only the form, for htmx swaps.
func Form(d FormData) templ.Component {
	return component("form.html", "form", d.normalize())
}

func (d FormData) normalize() FormData {
	if d.Action == "" {
		d.Action = "/"
	}
	if d.Path == "" {
		d.Path = "/"
	}
	return d
}

// Title is the document title.
func (d FormData) Title() string {
	return d.Tr("title")
}

// FormID is exposed for templates.
func (FormData) FormID() string {
	return FormID
}
