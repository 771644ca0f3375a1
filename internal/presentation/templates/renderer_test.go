package templates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
)

func previewDocument() *design.TemplateDocument {
	return &design.TemplateDocument{
		Template: design.Template{
			Layout: `<div class="invitation-container">{content}</div>`,
			Sections: map[string]design.Section{
				"content": {HTML: `<div class="element-element-eventTitle">{eventTitle}</div>`, Position: 0},
			},
		},
		Styles: design.Styles{
			Base: ".invitation-container {\n  position: relative;\n}",
			Components: map[string]design.ComponentStyles{
				"positionable-elements": {
					".element-element-eventTitle": design.Declarations{
						"left":  "50%",
						"top":   "50%",
						"color": "{colors.primary}",
					},
				},
			},
		},
		Variables: design.Variables{
			Colors: map[string]string{"primary": "#8b0000"},
		},
	}
}

func TestRenderSubstitutesAndEscapes(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(previewDocument(), map[string]string{"eventTitle": "Emma & Lucas"}, "")
	require.NoError(t, err)

	assert.Contains(t, out.HTML, "Emma &amp; Lucas")
	assert.NotContains(t, out.HTML, "{eventTitle}")
}

func TestRenderEscapesMarkupInEventData(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(previewDocument(), map[string]string{"eventTitle": `<script>alert("x")</script>`}, "")
	require.NoError(t, err)

	assert.NotContains(t, out.HTML, "<script>")
	assert.Contains(t, out.HTML, "&lt;script&gt;")
}

func TestRenderLeavesUnmatchedTokensUntouched(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(previewDocument(), map[string]string{"location": "Lisbon"}, "")
	require.NoError(t, err)

	assert.Contains(t, out.HTML, "{eventTitle}")
}

func TestRenderIsDeterministic(t *testing.T) {
	engine := NewEngine()
	eventData := map[string]string{"eventTitle": "Test"}

	first, err := engine.Render(previewDocument(), eventData, "01J5K")
	require.NoError(t, err)
	second, err := engine.Render(previewDocument(), eventData, "01J5K")
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first.CSS, second.CSS)
}

func TestRenderResolvesVariableReferences(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(previewDocument(), nil, "")
	require.NoError(t, err)

	assert.Contains(t, out.CSS, "color: #8b0000;")
	assert.NotContains(t, out.CSS, "{colors.primary}")
}

func TestRenderLeavesUnknownVariableReferences(t *testing.T) {
	engine := NewEngine()

	doc := previewDocument()
	doc.Styles.Components["positionable-elements"][".element-element-eventTitle"]["color"] = "{colors.missing}"
	out, err := engine.Render(doc, nil, "")
	require.NoError(t, err)

	assert.Contains(t, out.CSS, "{colors.missing}")
}

func TestRenderSectionOrdering(t *testing.T) {
	engine := NewEngine()

	doc := &design.TemplateDocument{
		Template: design.Template{
			Layout: "{content}",
			Sections: map[string]design.Section{
				"footer": {HTML: "<footer/>", Position: 2},
				"header": {HTML: "<header/>", Position: 0},
				"body":   {HTML: "<main/>", Position: 1},
			},
		},
	}
	out, err := engine.Render(doc, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "<header/><main/><footer/>", out.HTML)
}

func TestRenderSectionKeyOrderTiebreak(t *testing.T) {
	engine := NewEngine()

	doc := &design.TemplateDocument{
		Template: design.Template{
			Layout: "{content}",
			Sections: map[string]design.Section{
				"b": {HTML: "B"},
				"a": {HTML: "A"},
				"c": {HTML: "C"},
			},
		},
	}
	out, err := engine.Render(doc, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "ABC", out.HTML)
}

func TestRenderScopesSelectors(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(previewDocument(), map[string]string{"eventTitle": "Test"}, "01J5KXYZ")
	require.NoError(t, err)

	assert.Contains(t, out.HTML, `<div id="invitation-01J5KXYZ">`)
	assert.Contains(t, out.CSS, "#invitation-01J5KXYZ .element-element-eventTitle {")
	assert.Contains(t, out.CSS, "#invitation-01J5KXYZ .invitation-container {")
}

func TestRenderUnscopedWhenNoInvitationID(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render(previewDocument(), nil, "")
	require.NoError(t, err)

	assert.NotContains(t, out.HTML, "id=\"invitation-")
	assert.NotContains(t, out.CSS, "#invitation-")
}

func TestRenderNilDocumentFails(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Render(nil, nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, design.ErrTemplateStructure)
}

func TestCorruptedSectionFailsOnDecode(t *testing.T) {
	raw := `{"template":{"layout":"{content}","sections":{"content":{"html":42,"position":0}}}}`

	var doc design.TemplateDocument
	err := json.Unmarshal([]byte(raw), &doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, design.ErrTemplateStructure)
}

func TestEndToEndConvertThenRender(t *testing.T) {
	adapter := NewAdapter()
	engine := NewEngine()

	sceneJSON := `{"objects":[{"type":"textbox","text":"{{eventTitle}}","left":0,"top":0,"fontSize":48}]}`
	doc, err := adapter.Convert(sceneJSON, ConvertOptions{CanvasWidth: 794, CanvasHeight: 1123})
	require.NoError(t, err)

	assert.Equal(t, "eventTitle", doc.TextMappings["element-eventTitle"].InvitationVariable)
	decls := doc.Styles.Components["positionable-elements"][".element-element-eventTitle"]
	assert.Equal(t, "0%", decls["left"])
	assert.Equal(t, "0%", decls["top"])
	assert.Equal(t, "48px", decls["font-size"])

	out, err := engine.Render(doc, map[string]string{"eventTitle": "Test"}, "")
	require.NoError(t, err)
	assert.Contains(t, out.HTML, ">Test<")
	assert.NotContains(t, out.HTML, "{eventTitle}")
	assert.Contains(t, out.CSS, ".element-element-eventTitle {")
	assert.Contains(t, out.CSS, "  font-size: 48px;")
}
