package templates

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
)

// RequiredTokens are the placeholders every guest-facing invitation design
// is expected to carry. Validate reports which of them are missing; the
// caller decides whether that blocks a save.
var RequiredTokens = []string{"eventTitle", "eventDate", "location"}

const (
	contentSectionKey = "content"

	// Palette seeds. The first non-default string fill found among text
	// objects replaces primary while primary is still at its seed, the
	// second distinct one replaces secondary; accent is never replaced.
	defaultPrimaryColor   = "#333333"
	defaultSecondaryColor = "#777777"
	defaultAccentColor    = "#c9a227"
)

// ConvertOptions carries the optional inputs of a conversion. Zero-valued
// canvas dimensions fall back to A4 portrait.
type ConvertOptions struct {
	CanvasWidth        float64
	CanvasHeight       float64
	BackgroundImageURL string
}

// Adapter converts an editor scene graph into a portable template document.
// It is stateless; a single instance is shared process-wide.
type Adapter struct{}

// NewAdapter creates a canvas-to-template adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Convert builds a portable template document from a scene graph. The scene
// graph may be a JSON-encoded string/[]byte/json.RawMessage or an
// already-parsed value carrying an "objects" array. A missing objects array
// yields a zero-token document; only an unparseable JSON string is an error.
//
// The original scene graph is preserved verbatim in FabricData: the adapter
// only ever reads from it.
func (a *Adapter) Convert(sceneGraph any, opts ConvertOptions) (*design.TemplateDocument, error) {
	width := opts.CanvasWidth
	if width <= 0 {
		width = design.DefaultCanvasWidth
	}
	height := opts.CanvasHeight
	if height <= 0 {
		height = design.DefaultCanvasHeight
	}

	scene, fabricData, err := decodeSceneGraph(sceneGraph)
	if err != nil {
		return nil, err
	}

	// Pass 1: token discovery and placeholder markup, in input order.
	// Duplicate tokens overwrite the earlier mapping (later wins) but every
	// carrier object still emits its own placeholder div.
	var markup strings.Builder
	mappings := make(map[string]design.TextMapping)
	for i := range scene.Objects {
		obj := &scene.Objects[i]
		token, ok := resolveToken(obj)
		if !ok {
			continue
		}
		elementID := "element-" + token
		mappings[elementID] = design.TextMapping{
			ElementID:          elementID,
			InvitationVariable: token,
			ElementType:        obj.Type,
			FabricObjectID:     fabricObjectID(obj, i),
		}
		if markup.Len() > 0 {
			markup.WriteString("\n")
		}
		fmt.Fprintf(&markup,
			`<div class="element-%s" data-element-id="%s" data-invitation-variable="%s">{%s}</div>`,
			elementID, elementID, token, token)
	}

	// Pass 2: positioned style rules for the token carriers, same order,
	// same later-wins policy keyed by the derived element id.
	components := design.ComponentStyles{}
	for i := range scene.Objects {
		obj := &scene.Objects[i]
		token, ok := resolveToken(obj)
		if !ok {
			continue
		}
		selector := ".element-element-" + token
		components[selector] = elementDeclarations(obj, width, height)
	}

	doc := &design.TemplateDocument{
		Template: design.Template{
			Layout: `<div class="invitation-container">{content}</div>`,
			Sections: map[string]design.Section{
				contentSectionKey: {HTML: markup.String(), Position: 0},
			},
		},
		Styles: design.Styles{
			Base:       baseStyles(width, height, opts.BackgroundImageURL),
			Components: map[string]design.ComponentStyles{"positionable-elements": components},
			Animations: "",
		},
		Variables:    deriveVariables(scene),
		FabricData:   fabricData,
		TextMappings: mappings,
		CanvasWidth:  width,
		CanvasHeight: height,
		CanvasFormat: ClassifyFormat(width, height),
	}
	return doc, nil
}

// Validate checks that the converted document binds every required token.
// Advisory only: Convert never enforces this.
func (a *Adapter) Validate(doc *design.TemplateDocument) design.ValidationResult {
	missing := []string{}
	for _, token := range RequiredTokens {
		if doc == nil || doc.TextMappings == nil {
			missing = append(missing, token)
			continue
		}
		if _, ok := doc.TextMappings["element-"+token]; !ok {
			missing = append(missing, token)
		}
	}
	return design.ValidationResult{IsValid: len(missing) == 0, MissingFields: missing}
}

// ApplyBackground rewrites the document's structural CSS for a new
// background image URL. An empty URL removes the background block.
func (a *Adapter) ApplyBackground(doc *design.TemplateDocument, backgroundImageURL string) {
	if doc == nil {
		return
	}
	width := doc.CanvasWidth
	if width <= 0 {
		width = design.DefaultCanvasWidth
	}
	height := doc.CanvasHeight
	if height <= 0 {
		height = design.DefaultCanvasHeight
	}
	doc.Styles.Base = baseStyles(width, height, backgroundImageURL)
}

// decodeSceneGraph normalizes the accepted input shapes into the typed view
// plus the verbatim value stored as fabricData. Parsed inputs are kept
// as-is; string/byte inputs are decoded once for each representation.
func decodeSceneGraph(sceneGraph any) (*design.SceneDocument, any, error) {
	var raw []byte
	switch v := sceneGraph.(type) {
	case nil:
		return &design.SceneDocument{}, nil, nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", design.ErrMalformedSceneGraph, err)
		}
		var scene design.SceneDocument
		if err := json.Unmarshal(encoded, &scene); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", design.ErrMalformedSceneGraph, err)
		}
		return &scene, v, nil
	}

	var scene design.SceneDocument
	if err := json.Unmarshal(raw, &scene); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", design.ErrMalformedSceneGraph, err)
	}
	var fabricData any
	if err := json.Unmarshal(raw, &fabricData); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", design.ErrMalformedSceneGraph, err)
	}
	return &scene, fabricData, nil
}

// resolveToken returns the object's data-binding token: the explicit
// invitationVariable tag when present, else the first {{token}} in its text.
func resolveToken(obj *design.SceneObject) (string, bool) {
	if !obj.IsTextLike() {
		return "", false
	}
	if obj.InvitationVariable != "" {
		return obj.InvitationVariable, true
	}
	return ExtractToken(obj.Text)
}

// fabricObjectID returns the object's stable id, or a positional fallback.
func fabricObjectID(obj *design.SceneObject, index int) string {
	if obj.ID != "" {
		return obj.ID
	}
	return "obj-" + strconv.Itoa(index)
}

// elementDeclarations derives the absolute-position declaration block for a
// token-bearing object. Left/top address the element's center, matching the
// editor's anchor semantics, so a centering transform is always emitted.
func elementDeclarations(obj *design.SceneObject, canvasWidth, canvasHeight float64) design.Declarations {
	decls := design.Declarations{
		"position":  "absolute",
		"left":      formatPercent(floatOr(obj.Left, 0), canvasWidth),
		"top":       formatPercent(floatOr(obj.Top, 0), canvasHeight),
		"transform": "translate(-50%, -50%)",

		"font-size":      formatPx(floatOr(obj.FontSize, design.DefaultFontSize)),
		"font-family":    stringOr(obj.FontFamily, design.DefaultFontFamily),
		"color":          fillOr(obj, design.DefaultTextColor),
		"text-align":     stringOr(obj.TextAlign, design.DefaultTextAlign),
		"font-weight":    fontWeight(obj.FontWeight),
		"font-style":     stringOr(obj.FontStyle, design.DefaultFontStyle),
		"line-height":    formatNumber(floatOr(obj.LineHeight, design.DefaultLineHeight)),
		"letter-spacing": letterSpacing(obj.CharSpacing),

		"opacity": formatNumber(floatOr(obj.Opacity, 1)),
		"z-index": strconv.Itoa(intOr(obj.ZIndex, 0)),
	}
	// Width/height only when the editor recorded them; never emit 0%.
	if obj.Width != nil {
		decls["width"] = formatPercent(*obj.Width, canvasWidth)
	}
	if obj.Height != nil {
		decls["height"] = formatPercent(*obj.Height, canvasHeight)
	}
	return decls
}

// baseStyles builds the structural container CSS, including the optional
// background-image block.
func baseStyles(width, height float64, backgroundImageURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `.invitation-container {
  position: relative;
  width: 100%%;
  max-width: %spx;
  aspect-ratio: %s / %s;
  margin: 0 auto;
  overflow: hidden;
}`, formatNumber(width), formatNumber(width), formatNumber(height))
	if backgroundImageURL != "" {
		fmt.Fprintf(&b, `
.invitation-container {
  background-image: url('%s');
  background-size: contain;
  background-position: center;
  background-repeat: no-repeat;
}`, backgroundImageURL)
	}
	return b.String()
}

// deriveVariables seeds the palette/typography/spacing dictionaries and
// promotes the first two distinct non-default text fills into
// primary/secondary. Encounter order is input-array order; this is a
// best-effort heuristic preserved as-is, not a most-used-color ranking.
func deriveVariables(scene *design.SceneDocument) design.Variables {
	colors := map[string]string{
		"primary":   defaultPrimaryColor,
		"secondary": defaultSecondaryColor,
		"accent":    defaultAccentColor,
	}
	for i := range scene.Objects {
		obj := &scene.Objects[i]
		if !obj.IsTextLike() {
			continue
		}
		fill, ok := obj.FillColor()
		if !ok || fill == design.DefaultTextColor {
			continue
		}
		if colors["primary"] == defaultPrimaryColor {
			colors["primary"] = fill
		} else if colors["secondary"] == defaultSecondaryColor && fill != colors["primary"] {
			colors["secondary"] = fill
		}
	}
	return design.Variables{
		Colors: colors,
		Typography: map[string]string{
			"headingFont": "'Playfair Display', serif",
			"bodyFont":    design.DefaultFontFamily,
			"baseSize":    "16px",
		},
		Spacing: map[string]string{
			"small":  "8px",
			"medium": "16px",
			"large":  "32px",
		},
	}
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func fillOr(obj *design.SceneObject, fallback string) string {
	if fill, ok := obj.FillColor(); ok {
		return fill
	}
	return fallback
}

// fontWeight normalizes the editor's mixed string/number weight values.
func fontWeight(v any) string {
	switch w := v.(type) {
	case string:
		if w != "" {
			return w
		}
	case float64:
		return strconv.Itoa(int(w))
	case int:
		return strconv.Itoa(w)
	}
	return design.DefaultFontWeight
}

// letterSpacing maps the editor's charSpacing to a pixel value.
func letterSpacing(charSpacing *float64) string {
	if charSpacing == nil {
		return design.DefaultLetterSpacing
	}
	return formatPx(*charSpacing)
}
