// Package errhandler is the call-site boundary for failures. A Handler
// normalizes whatever a fallible operation produced, lets the caller absorb
// it locally, and otherwise reports it to the toast sink and hands it back
// so the caller can still react.
package errhandler
