package templates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
)

func TestConvertDiscoversTokenFromText(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"textbox","text":"{{eventTitle}}","left":100,"top":200,"fontSize":48}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	require.Len(t, doc.TextMappings, 1)
	mapping := doc.TextMappings["element-eventTitle"]
	assert.Equal(t, "element-eventTitle", mapping.ElementID)
	assert.Equal(t, "eventTitle", mapping.InvitationVariable)
	assert.Equal(t, "textbox", mapping.ElementType)
	assert.Equal(t, "obj-0", mapping.FabricObjectID)

	content := doc.Template.Sections["content"]
	assert.Contains(t, content.HTML, `data-element-id="element-eventTitle"`)
	assert.Contains(t, content.HTML, `data-invitation-variable="eventTitle"`)
	assert.Contains(t, content.HTML, `{eventTitle}`)
}

func TestConvertExplicitTagPrecedesTextExtraction(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"text","text":"{{bar}}","invitationVariable":"foo"}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	require.Len(t, doc.TextMappings, 1)
	assert.Equal(t, "foo", doc.TextMappings["element-foo"].InvitationVariable)
	_, hasBar := doc.TextMappings["element-bar"]
	assert.False(t, hasBar)
}

func TestConvertPlainTextObjectsAreInert(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"textbox","text":"Hello","left":10,"top":10}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	assert.Empty(t, doc.TextMappings)
	assert.Empty(t, doc.Template.Sections["content"].HTML)

	// Still preserved for re-editing.
	fabric, ok := doc.FabricData.(map[string]any)
	require.True(t, ok)
	objects, ok := fabric["objects"].([]any)
	require.True(t, ok)
	assert.Len(t, objects, 1)
}

func TestConvertShapeObjectsAreNotBound(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"rect","text":"{{eventTitle}}","left":0,"top":0},{"type":"image","src":"x.png"}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	assert.Empty(t, doc.TextMappings)
}

func TestConvertRoundTripsFabricData(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"version":"5.3.0","objects":[{"type":"textbox","text":"{{eventTitle}}","left":1,"customEditorField":{"nested":true}},{"type":"circle","radius":40}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	var original any
	require.NoError(t, json.Unmarshal([]byte(sceneJSON), &original))
	assert.Equal(t, original, doc.FabricData)
}

func TestConvertKeepsParsedSceneGraphVerbatim(t *testing.T) {
	adapter := NewAdapter()

	parsed := map[string]any{
		"objects": []any{
			map[string]any{"type": "textbox", "text": "{{eventDate}}", "left": 5.0, "top": 5.0},
		},
	}
	doc, err := adapter.Convert(parsed, ConvertOptions{})
	require.NoError(t, err)

	assert.Equal(t, parsed, doc.FabricData)
	assert.Contains(t, doc.TextMappings, "element-eventDate")
}

func TestConvertGeometryToPercentages(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"textbox","text":"{{eventTitle}}","left":397,"top":561.5,"width":397,"height":112.3}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{CanvasWidth: 794, CanvasHeight: 1123})
	require.NoError(t, err)

	decls := doc.Styles.Components["positionable-elements"][".element-element-eventTitle"]
	require.NotNil(t, decls)
	assert.Equal(t, "50%", decls["left"])
	assert.Equal(t, "50%", decls["top"])
	assert.Equal(t, "translate(-50%, -50%)", decls["transform"])
	assert.Equal(t, "50%", decls["width"])
	assert.Equal(t, "10%", decls["height"])
}

func TestConvertOmitsAbsentDimensions(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"textbox","text":"{{eventTitle}}","left":0,"top":0}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	decls := doc.Styles.Components["positionable-elements"][".element-element-eventTitle"]
	_, hasWidth := decls["width"]
	_, hasHeight := decls["height"]
	assert.False(t, hasWidth)
	assert.False(t, hasHeight)
	assert.Equal(t, "0%", decls["left"])
	assert.Equal(t, "0%", decls["top"])
}

func TestConvertStyleFallbacks(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"i-text","text":"{{moreInfo}}"}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	decls := doc.Styles.Components["positionable-elements"][".element-element-moreInfo"]
	assert.Equal(t, "16px", decls["font-size"])
	assert.Equal(t, "Montserrat, sans-serif", decls["font-family"])
	assert.Equal(t, "#000000", decls["color"])
	assert.Equal(t, "center", decls["text-align"])
	assert.Equal(t, "normal", decls["font-weight"])
	assert.Equal(t, "normal", decls["font-style"])
	assert.Equal(t, "1.5", decls["line-height"])
	assert.Equal(t, "0px", decls["letter-spacing"])
	assert.Equal(t, "1", decls["opacity"])
	assert.Equal(t, "0", decls["z-index"])
}

func TestConvertCopiesExplicitStyles(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"textbox","text":"{{eventTitle}}","fontSize":48,"fontFamily":"Great Vibes","fill":"#8b0000","textAlign":"left","fontWeight":700,"fontStyle":"italic","lineHeight":1.2,"charSpacing":2,"opacity":0.8,"zIndex":3}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	decls := doc.Styles.Components["positionable-elements"][".element-element-eventTitle"]
	assert.Equal(t, "48px", decls["font-size"])
	assert.Equal(t, "Great Vibes", decls["font-family"])
	assert.Equal(t, "#8b0000", decls["color"])
	assert.Equal(t, "left", decls["text-align"])
	assert.Equal(t, "700", decls["font-weight"])
	assert.Equal(t, "italic", decls["font-style"])
	assert.Equal(t, "1.2", decls["line-height"])
	assert.Equal(t, "2px", decls["letter-spacing"])
	assert.Equal(t, "0.8", decls["opacity"])
	assert.Equal(t, "3", decls["z-index"])
}

func TestConvertDuplicateTokenLaterWins(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[
		{"type":"textbox","text":"{{eventTitle}}","id":"first","fontSize":20},
		{"type":"text","text":"{{eventTitle}}","id":"second","fontSize":40}
	]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	// One mapping and one style rule, both from the later object.
	require.Len(t, doc.TextMappings, 1)
	assert.Equal(t, "second", doc.TextMappings["element-eventTitle"].FabricObjectID)
	assert.Equal(t, "text", doc.TextMappings["element-eventTitle"].ElementType)

	decls := doc.Styles.Components["positionable-elements"][".element-element-eventTitle"]
	assert.Equal(t, "40px", decls["font-size"])

	// Both carriers still emit placeholder markup.
	content := doc.Template.Sections["content"].HTML
	assert.Equal(t, 2, countOccurrences(content, "{eventTitle}"))
}

func TestConvertPaletteDerivation(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[
		{"type":"textbox","text":"{{eventTitle}}","fill":"#000000"},
		{"type":"textbox","text":"{{eventDate}}","fill":"#8b0000"},
		{"type":"textbox","text":"{{location}}","fill":"#8b0000"},
		{"type":"textbox","text":"{{eventTime}}","fill":"#1b4332"},
		{"type":"textbox","text":"{{customText}}","fill":"#ff00ff"}
	]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	// Default #000000 is skipped; first non-default becomes primary, next
	// distinct one becomes secondary, accent is never replaced.
	assert.Equal(t, "#8b0000", doc.Variables.Colors["primary"])
	assert.Equal(t, "#1b4332", doc.Variables.Colors["secondary"])
	assert.Equal(t, defaultAccentColor, doc.Variables.Colors["accent"])
}

func TestConvertPaletteIgnoresGradientFills(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[{"type":"textbox","text":"{{eventTitle}}","fill":{"type":"linear","colorStops":[]}}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	assert.Equal(t, defaultPrimaryColor, doc.Variables.Colors["primary"])
	decls := doc.Styles.Components["positionable-elements"][".element-element-eventTitle"]
	assert.Equal(t, "#000000", decls["color"])
}

func TestConvertDefaultsAndFormat(t *testing.T) {
	adapter := NewAdapter()

	doc, err := adapter.Convert(`{"objects":[]}`, ConvertOptions{})
	require.NoError(t, err)
	assert.Equal(t, design.DefaultCanvasWidth, doc.CanvasWidth)
	assert.Equal(t, design.DefaultCanvasHeight, doc.CanvasHeight)
	assert.Equal(t, "A4", doc.CanvasFormat)

	doc, err = adapter.Convert(`{"objects":[]}`, ConvertOptions{CanvasWidth: 300, CanvasHeight: 400})
	require.NoError(t, err)
	assert.Equal(t, "custom", doc.CanvasFormat)
}

func TestConvertBackgroundImage(t *testing.T) {
	adapter := NewAdapter()

	doc, err := adapter.Convert(`{"objects":[]}`, ConvertOptions{BackgroundImageURL: "/media/backgrounds/floral.webp"})
	require.NoError(t, err)
	assert.Contains(t, doc.Styles.Base, "background-image: url('/media/backgrounds/floral.webp')")
	assert.Contains(t, doc.Styles.Base, "background-size: contain")

	doc, err = adapter.Convert(`{"objects":[]}`, ConvertOptions{})
	require.NoError(t, err)
	assert.NotContains(t, doc.Styles.Base, "background-image")
}

func TestConvertMissingObjectsArray(t *testing.T) {
	adapter := NewAdapter()

	doc, err := adapter.Convert(`{}`, ConvertOptions{})
	require.NoError(t, err)
	assert.Empty(t, doc.TextMappings)

	doc, err = adapter.Convert(nil, ConvertOptions{})
	require.NoError(t, err)
	assert.Empty(t, doc.TextMappings)
}

func TestConvertMalformedJSON(t *testing.T) {
	adapter := NewAdapter()

	_, err := adapter.Convert(`{"objects":[`, ConvertOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, design.ErrMalformedSceneGraph)
}

func TestValidate(t *testing.T) {
	adapter := NewAdapter()

	sceneJSON := `{"objects":[
		{"type":"textbox","text":"{{eventTitle}}"},
		{"type":"textbox","text":"{{eventDate}}"}
	]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{})
	require.NoError(t, err)

	result := adapter.Validate(doc)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"location"}, result.MissingFields)

	complete := `{"objects":[
		{"type":"textbox","text":"{{eventTitle}}"},
		{"type":"textbox","text":"{{eventDate}}"},
		{"type":"textbox","text":"{{location}}"}
	]}`
	doc, err = adapter.Convert(complete, ConvertOptions{})
	require.NoError(t, err)

	result = adapter.Validate(doc)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.MissingFields)
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}
