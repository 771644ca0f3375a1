package templates

import (
	"sort"
	"strings"

	"github.com/InkVite/inkvite-go/internal/domain/entities/design"
)

// assembleCSS serializes the three style layers in order: base, components,
// animations. All map iteration is over sorted keys so the output is
// deterministic. Variable references in declaration values and in the raw
// base/animations text are substituted before serialization.
func assembleCSS(styles design.Styles, vars design.Variables, invitationID string) string {
	scope := ""
	if invitationID != "" {
		scope = "#invitation-" + invitationID
	}

	var b strings.Builder

	if base := substituteVariables(styles.Base, vars); base != "" {
		if scope != "" {
			base = scopeCSS(base, scope)
		}
		b.WriteString(base)
	}

	componentNames := make([]string, 0, len(styles.Components))
	for name := range styles.Components {
		componentNames = append(componentNames, name)
	}
	sort.Strings(componentNames)

	for _, name := range componentNames {
		component := styles.Components[name]
		selectors := make([]string, 0, len(component))
		for selector := range component {
			selectors = append(selectors, selector)
		}
		sort.Strings(selectors)

		for _, selector := range selectors {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			writeRule(&b, scopeSelector(selector, scope), component[selector], vars)
		}
	}

	if animations := substituteVariables(styles.Animations, vars); animations != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(animations)
	}

	return b.String()
}

// writeRule serializes one declaration block with sorted properties.
func writeRule(b *strings.Builder, selector string, decls design.Declarations, vars design.Variables) {
	props := make([]string, 0, len(decls))
	for prop := range decls {
		props = append(props, prop)
	}
	sort.Strings(props)

	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, prop := range props {
		b.WriteString("  ")
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(substituteVariables(decls[prop], vars))
		b.WriteString(";\n")
	}
	b.WriteString("}")
}

// substituteVariables resolves {colors.x} / {typography.x} / {spacing.x}
// references against the variable dictionaries. Unknown references are left
// untouched, mirroring the token substitution policy.
func substituteVariables(s string, vars design.Variables) string {
	if s == "" || !strings.Contains(s, "{") {
		return s
	}
	return variableRefPattern.ReplaceAllStringFunc(s, func(match string) string {
		inner := match[1 : len(match)-1]
		dot := strings.Index(inner, ".")
		if value, ok := vars.Lookup(inner[:dot], inner[dot+1:]); ok {
			return value
		}
		return match
	})
}

// scopeSelector prefixes a single selector with the invitation scope.
func scopeSelector(selector, scope string) string {
	if scope == "" {
		return selector
	}
	return scope + " " + selector
}

// scopeCSS prefixes every top-level selector in a raw CSS string with the
// invitation scope. At-rules are left as-is; the base styles the adapter
// emits contain none, and foreign templates keep their at-rule semantics.
func scopeCSS(css, scope string) string {
	blocks := strings.Split(css, "}")
	var b strings.Builder
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		brace := strings.Index(block, "{")
		if brace < 0 {
			b.WriteString(block)
			b.WriteString("}")
			continue
		}
		selectorPart := block[:brace]
		body := block[brace:]

		leading := selectorPart[:len(selectorPart)-len(strings.TrimLeft(selectorPart, " \n\t"))]
		trimmed := strings.TrimSpace(selectorPart)
		if strings.HasPrefix(trimmed, "@") {
			b.WriteString(block)
			b.WriteString("}")
			continue
		}

		selectors := strings.Split(trimmed, ",")
		for i, sel := range selectors {
			selectors[i] = scope + " " + strings.TrimSpace(sel)
		}
		b.WriteString(leading)
		b.WriteString(strings.Join(selectors, ", "))
		b.WriteString(" ")
		b.WriteString(strings.TrimRight(body, " \n"))
		b.WriteString("}")
	}
	return b.String()
}
