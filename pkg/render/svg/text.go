package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 16.0
)

// FontSize picks a label size that fits b.
func FontSize(b Box) float64 {
	n := max(1, len(b.Label))
	byHeight := b.H * fontHeightRatio
	byWidth := (b.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens the label to what fits the box width.
func TruncateLabel(b Box) string {
	charWidth := FontSize(b) * fontCharWidth
	maxChars := max(3, int(b.W*fontWidthRatio/charWidth))
	if len(b.Label) <= maxChars {
		return b.Label
	}
	return b.Label[:maxChars-2] + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func renderLabel(buf *bytes.Buffer, b Box) {
	if b.W < fontSizeMin || b.H < fontSizeMin {
		return
	}
	fmt.Fprintf(buf, `  <text class="frame-label" data-frame="%s" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		EscapeXML(b.ID), b.CX, b.CY, FontSize(b), EscapeXML(TruncateLabel(b)))
}
