package templates

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
)

// Engine renders a portable template document against concrete event data.
// It is a pure function of its inputs: no I/O, no internal state,
// byte-identical output for identical inputs. Cheap enough to run on every
// keystroke of a live-preview form.
type Engine struct{}

// NewEngine creates a template render engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Render resolves the layout's {content} slot with the document's sections
// (ordered by position, key order as tiebreak), substitutes every {token}
// whose value is present in eventData with the HTML-escaped value, and
// assembles the style sheet from base, components, and animations with
// variable references resolved.
//
// Tokens with no eventData value are left untouched as literal text.
//
// When invitationID is non-empty the output is scoped: the HTML is wrapped
// in an invitation-specific root and every selector is prefixed with it, so
// multiple rendered invitations can coexist in one DOM.
func (e *Engine) Render(doc *design.TemplateDocument, eventData map[string]string, invitationID string) (*design.RenderedOutput, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", design.ErrTemplateStructure)
	}

	content, err := resolveSections(doc.Template.Sections)
	if err != nil {
		return nil, err
	}

	layout := doc.Template.Layout
	if layout == "" {
		layout = "{content}"
	}
	htmlOut := strings.Replace(layout, "{content}", content, 1)
	htmlOut = substituteTokens(htmlOut, eventData)

	cssOut := assembleCSS(doc.Styles, doc.Variables, invitationID)

	if invitationID != "" {
		htmlOut = fmt.Sprintf(`<div id="invitation-%s">%s</div>`, invitationID, htmlOut)
	}

	return &design.RenderedOutput{HTML: htmlOut, CSS: cssOut}, nil
}

// resolveSections concatenates section HTML ordered by declared position,
// falling back to key order for equal positions.
func resolveSections(sections map[string]design.Section) (string, error) {
	if len(sections) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(sections))
	for key := range sections {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return sections[keys[i]].Position < sections[keys[j]].Position
	})

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(sections[key].HTML)
	}
	return b.String(), nil
}

// substituteTokens replaces every {token} whose key exists in eventData
// with the escaped value. Event data is user-entered and must never break
// out of the markup.
func substituteTokens(s string, eventData map[string]string) string {
	if len(eventData) == 0 {
		return s
	}
	return templateSlotPattern.ReplaceAllStringFunc(s, func(match string) string {
		token := match[1 : len(match)-1]
		value, ok := eventData[token]
		if !ok {
			return match
		}
		return html.EscapeString(value)
	})
}
