// Package web embeds the browser page served at the root route.
package web

import _ "embed"

// IndexHTML is the single-page UI: a ticker form that opens an
// EventSource against /analyze/stream and renders the analysis as it
// arrives.
//
//go:embed static/index.html
var IndexHTML []byte
