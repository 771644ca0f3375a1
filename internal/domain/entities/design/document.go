package design

import (
	"encoding/json"
	"fmt"
)

// TemplateDocument is the persisted, editor-independent representation of a
// design: layout template, style sheet, variable dictionary, the verbatim
// scene graph, and the token-to-element mappings. Field names and nesting
// are part of the storage contract and must not change.
type TemplateDocument struct {
	Template     Template               `json:"template"`
	Styles       Styles                 `json:"styles"`
	Variables    Variables              `json:"variables"`
	FabricData   any                    `json:"fabricData"`
	TextMappings map[string]TextMapping `json:"textMappings"`
	CanvasWidth  float64                `json:"canvasWidth"`
	CanvasHeight float64                `json:"canvasHeight"`
	CanvasFormat string                 `json:"canvasFormat"`
}

// Template is the HTML skeleton: a layout wrapper with a single {content}
// slot plus named sections.
type Template struct {
	Layout   string             `json:"layout"`
	Sections map[string]Section `json:"sections"`
}

// Section is one named block of template HTML. Position orders sections
// when the layout slot is resolved.
type Section struct {
	HTML     string `json:"html"`
	Position int    `json:"position"`
}

// UnmarshalJSON rejects sections whose html is not a JSON string. A
// non-string html means the persisted template is corrupted upstream, and
// rendering from it must fail fast rather than emit broken markup.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		HTML     json.RawMessage `json:"html"`
		Position int             `json:"position"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateStructure, err)
	}
	if len(raw.HTML) > 0 {
		var html string
		if err := json.Unmarshal(raw.HTML, &html); err != nil {
			return fmt.Errorf("%w: section html must be a string", ErrTemplateStructure)
		}
		s.HTML = html
	}
	s.Position = raw.Position
	return nil
}

// Styles groups the three CSS layers serialized in order: base structural
// rules, per-component selector maps, then animations.
type Styles struct {
	Base       string                     `json:"base"`
	Components map[string]ComponentStyles `json:"components"`
	Animations string                     `json:"animations"`
}

// ComponentStyles maps a CSS selector to its declaration block.
type ComponentStyles map[string]Declarations

// Declarations is a property -> value bag for one declaration block.
type Declarations map[string]string

// Variables holds the design's palette and scale dictionaries. Declaration
// values may reference them as {colors.x}, {typography.x}, {spacing.x}.
type Variables struct {
	Colors     map[string]string `json:"colors"`
	Typography map[string]string `json:"typography"`
	Spacing    map[string]string `json:"spacing"`
}

// Lookup resolves a variable reference by group and name.
func (v Variables) Lookup(group, name string) (string, bool) {
	var m map[string]string
	switch group {
	case "colors":
		m = v.Colors
	case "typography":
		m = v.Typography
	case "spacing":
		m = v.Spacing
	default:
		return "", false
	}
	val, ok := m[name]
	return val, ok
}

// TextMapping links a discovered placeholder token to the visual element
// that carries it.
type TextMapping struct {
	ElementID          string `json:"elementId"`
	InvitationVariable string `json:"invitationVariable"`
	ElementType        string `json:"elementType"`
	FabricObjectID     string `json:"fabricObjectId"`
}

// ValidationResult is the advisory outcome of checking a converted document
// for the required invitation tokens.
type ValidationResult struct {
	IsValid       bool     `json:"isValid"`
	MissingFields []string `json:"missingFields"`
}

// RenderedOutput is the terminal artifact of the render engine.
type RenderedOutput struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}
