// Package templates implements the canvas-to-template adapter and the
// template render engine for invitation designs.
package templates

import "regexp"

// A token is a bare word-character identifier bound to event data. Editor
// text carries tokens as {{token}}; template HTML carries them as {token}.
// Both patterns share the same token class so the adapter (discovery) and
// the render engine (substitution) can never drift.
var (
	editorTokenPattern   = regexp.MustCompile(`\{\{(\w+)\}\}`)
	templateSlotPattern  = regexp.MustCompile(`\{(\w+)\}`)
	variableRefPattern   = regexp.MustCompile(`\{(colors|typography|spacing)\.(\w+)\}`)
)

// ExtractToken returns the first {{token}} placeholder found in editor text.
// Returns false when the text carries no placeholder.
func ExtractToken(text string) (string, bool) {
	m := editorTokenPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
