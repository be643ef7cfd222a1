// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the route decision of the guard in a loading, public or app
// layout, shows queued notifications and catches page panics in an error
// boundary. All UI strings are localized via Localization.
package ui
