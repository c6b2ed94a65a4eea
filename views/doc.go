// Package views renders the Form UI pages.
//
// Pages are html/template files embedded in the binary and exposed as
// templ.Component values, so handlers pass them straight to Context.Render.
// Every page shares templates/layout.html and the partials; one template set
// is parsed per page at init.
package views
