package templates

import (
	"math"
	"strconv"
)

// canvasFormats maps exact pixel dimensions to a print format label.
var canvasFormats = map[[2]float64]string{
	{794, 1123}:  "A4",
	{1123, 794}:  "A4-landscape",
	{559, 794}:   "A5",
	{1123, 1587}: "A3",
}

// ClassifyFormat labels canvas dimensions by exact match against the known
// print formats; anything else is "custom".
func ClassifyFormat(width, height float64) string {
	if label, ok := canvasFormats[[2]float64{width, height}]; ok {
		return label
	}
	return "custom"
}

// formatPercent converts an absolute pixel value to a percentage of the
// given span, rounded to 4 decimal places with trailing zeros trimmed.
func formatPercent(value, span float64) string {
	pct := value / span * 100
	pct = math.Round(pct*10000) / 10000
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// formatPx renders a pixel quantity, trimming a trailing ".0".
func formatPx(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "px"
}

// formatNumber renders a bare numeric CSS value (line-height, opacity).
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
