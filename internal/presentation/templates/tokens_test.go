package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		token string
		ok    bool
	}{
		{"simple placeholder", "{{eventTitle}}", "eventTitle", true},
		{"embedded in prose", "Join us: {{eventDate}} at noon", "eventDate", true},
		{"first match wins", "{{location}} and {{eventTime}}", "location", true},
		{"plain text", "Hello", "", false},
		{"single braces are not editor tokens", "{eventTitle}", "", false},
		{"unbalanced", "{{eventTitle}", "", false},
		{"non-word characters break the match", "{{event-title}}", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := ExtractToken(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestClassifyFormat(t *testing.T) {
	assert.Equal(t, "A4", ClassifyFormat(794, 1123))
	assert.Equal(t, "A4-landscape", ClassifyFormat(1123, 794))
	assert.Equal(t, "A5", ClassifyFormat(559, 794))
	assert.Equal(t, "A3", ClassifyFormat(1123, 1587))
	assert.Equal(t, "custom", ClassifyFormat(100, 100))
	assert.Equal(t, "custom", ClassifyFormat(0, 0))
	assert.Equal(t, "custom", ClassifyFormat(794, 1124))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50%", formatPercent(397, 794))
	assert.Equal(t, "50%", formatPercent(561.5, 1123))
	assert.Equal(t, "0%", formatPercent(0, 794))
	assert.Equal(t, "100%", formatPercent(794, 794))
	assert.Equal(t, "33.3333%", formatPercent(1, 3))
}
