// Package handlers declares the relay endpoint and the Form UI pages.
//
// RelayHandler accepts the JSON submission and sends one email. FormHandler
// renders the form, validates it and submits through the relay client.
// Errors renders handler errors as JSON on relay paths and as pages elsewhere.
package handlers
