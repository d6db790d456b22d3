// Package views holds the server-rendered components of the web app: the page
// layout, the toast region streamed over datastar, the notification dropdown
// and the error surfaces used by handler.NewErrorHandler and handler.Boundary.
//
// Components are templ.Components so they render the same way for full page
// loads and datastar element patches.
package views
