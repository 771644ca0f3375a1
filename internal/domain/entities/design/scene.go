// Package design provides domain entities for the canvas-to-template
// conversion and rendering pipeline.
package design

// Default canvas dimensions (A4 portrait at 96dpi).
const (
	DefaultCanvasWidth  = 794.0
	DefaultCanvasHeight = 1123.0
)

// Text style fallbacks applied when the editor omits a field.
const (
	DefaultFontSize      = 16.0
	DefaultFontFamily    = "Montserrat, sans-serif"
	DefaultTextColor     = "#000000"
	DefaultTextAlign     = "center"
	DefaultFontWeight    = "normal"
	DefaultFontStyle     = "normal"
	DefaultLineHeight    = 1.5
	DefaultLetterSpacing = "0px"
)

// SceneDocument is the typed view of the editor's scene graph. A missing
// objects array is treated as an empty scene, not an error.
type SceneDocument struct {
	Objects []SceneObject `json:"objects"`
}

// SceneObject is one positioned visual object from the editor. Only the
// fields the adapter reads are typed here; the full object survives
// untouched inside TemplateDocument.FabricData. Geometry and numeric style
// fields are pointers so that "absent" and "zero" stay distinguishable.
// Fill and FontWeight are `any` because the editor emits mixed types for
// them (gradient objects, numeric weights).
type SceneObject struct {
	Type               string   `json:"type"`
	ID                 string   `json:"id,omitempty"`
	Left               *float64 `json:"left,omitempty"`
	Top                *float64 `json:"top,omitempty"`
	Width              *float64 `json:"width,omitempty"`
	Height             *float64 `json:"height,omitempty"`
	Text               string   `json:"text,omitempty"`
	FontSize           *float64 `json:"fontSize,omitempty"`
	FontFamily         string   `json:"fontFamily,omitempty"`
	Fill               any      `json:"fill,omitempty"`
	TextAlign          string   `json:"textAlign,omitempty"`
	FontWeight         any      `json:"fontWeight,omitempty"`
	FontStyle          string   `json:"fontStyle,omitempty"`
	LineHeight         *float64 `json:"lineHeight,omitempty"`
	CharSpacing        *float64 `json:"charSpacing,omitempty"`
	Opacity            *float64 `json:"opacity,omitempty"`
	ZIndex             *int     `json:"zIndex,omitempty"`
	InvitationVariable string   `json:"invitationVariable,omitempty"`
}

// IsTextLike reports whether the object kind carries editable text and can
// therefore participate in data binding.
func (o *SceneObject) IsTextLike() bool {
	switch o.Type {
	case "textbox", "text", "i-text":
		return true
	}
	return false
}

// FillColor returns the object's fill when it is a plain color string.
// Gradient/pattern fills (objects) report false.
func (o *SceneObject) FillColor() (string, bool) {
	s, ok := o.Fill.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
