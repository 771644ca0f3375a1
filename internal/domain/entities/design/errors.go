package design

import "errors"

// ErrMalformedSceneGraph wraps a JSON parse failure on a scene graph
// supplied as a string. All other input gaps are defaulted, not rejected.
var ErrMalformedSceneGraph = errors.New("malformed scene graph")

// ErrTemplateStructure marks a corrupted persisted template (non-string
// section html, missing template body). Rendering fails fast on it.
var ErrTemplateStructure = errors.New("invalid template structure")
