package chart

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"norya.com/report/types"
)

// Colors and geometry of the embedded range bar. The renderer uses SVG so the
// fixed-layout engine can rasterize it sharply at any scale.
const (
	colorNormal     = "#16A34A"
	colorBorder     = "#F59E0B"
	colorRisk       = "#DC2626"
	colorBackground = "#E5E7EB"
	colorMarker     = "#1f2937"
	colorMarkerText = "#111827"

	canvasWidth      = 700
	canvasHeight     = 120
	barHeight        = 20
	barY             = 52
	barRadius        = 10
	labelY           = 38
	markerLineHeight = 28
	fontSizeLabel    = 13
	fontSizeValue    = 12

	// Horizontal margin reserved for axis labels; the value marker is clamped
	// slightly inside it.
	marginX    = 80
	clampInset = 82
)

// Synthesize draws a three-zone range bar with a value marker for one
// measurement. It returns false, and no artifact, exactly when the numeric
// value is missing, the reference range is missing, or the range is empty.
// Identical inputs produce byte-identical output.
func Synthesize(name string, value *float64, unit string, ref *types.ReferenceRange, status types.Status) (types.ChartArtifact, bool) {
	if value == nil || ref == nil || ref.High <= ref.Low {
		return types.ChartArtifact{}, false
	}
	v := *value
	span := ref.High - ref.Low
	padding := 1.0
	if span > 0 {
		padding = math.Max(span*0.3, span*0.1)
	}
	displayMin := math.Min(ref.Low, v) - padding
	displayMax := math.Max(ref.High, v) + padding
	if displayMax <= displayMin {
		displayMax = displayMin + 1.0
	}

	svg := render(name, v, unit, *ref, status, displayMin, displayMax)
	return types.ChartArtifact{
		SVG:        svg,
		Encoded:    base64.StdEncoding.EncodeToString([]byte(svg)),
		DisplayMin: displayMin,
		DisplayMax: displayMax,
	}, true
}

func render(name string, value float64, unit string, ref types.ReferenceRange, status types.Status, displayMin, displayMax float64) string {
	rangeSpan := displayMax - displayMin
	xPos := func(v float64) float64 {
		return marginX + (v-displayMin)/rangeSpan*(canvasWidth-2*marginX)
	}

	x0 := float64(marginX)
	xRefLow := xPos(ref.Low)
	xRefHigh := xPos(ref.High)
	xEnd := float64(canvasWidth - marginX)

	// Zone colors: the out-of-range zone on the side the value fell out of is
	// painted as risk, the middle zone flips to the border color for
	// borderline values.
	lowColor := colorBackground
	if status == types.StatusLow {
		lowColor = colorRisk
	}
	midColor := colorNormal
	if status == types.StatusBorder {
		midColor = colorBorder
	}
	highColor := colorBackground
	if status == types.StatusHigh {
		highColor = colorRisk
	}

	valueX := math.Max(clampInset, math.Min(canvasWidth-clampInset, xPos(value)))
	valueLabel := num(value)
	if unit != "" {
		valueLabel += " " + unit
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" style="max-width:100%%;height:auto;">`,
		canvasWidth, canvasHeight, canvasWidth, canvasHeight)
	b.WriteString("\n")
	fmt.Fprintf(&b,
		`  <text x="%d" y="%d" font-family="Helvetica,Arial,sans-serif" font-size="%d" font-weight="600" fill="%s">%s</text>`,
		marginX, labelY, fontSizeLabel, colorMarkerText, escape(name))
	b.WriteString("\n")
	fmt.Fprintf(&b, `  <g transform="translate(0,%d)">`, barY)
	b.WriteString("\n")
	fmt.Fprintf(&b,
		`    <rect x="%s" y="0" width="%s" height="%d" rx="%d" ry="%d" fill="%s"/>`,
		num(x0), num(xRefLow-x0), barHeight, barRadius, barRadius, lowColor)
	b.WriteString("\n")
	fmt.Fprintf(&b,
		`    <rect x="%s" y="0" width="%s" height="%d" rx="0" fill="%s"/>`,
		num(xRefLow), num(xRefHigh-xRefLow), barHeight, midColor)
	b.WriteString("\n")
	fmt.Fprintf(&b,
		`    <rect x="%s" y="0" width="%s" height="%d" rx="%d" ry="%d" fill="%s"/>`,
		num(xRefHigh), num(xEnd-xRefHigh), barHeight, barRadius, barRadius, highColor)
	b.WriteString("\n  </g>\n")
	fmt.Fprintf(&b,
		`  <line x1="%s" y1="%d" x2="%s" y2="%d" stroke="%s" stroke-width="2.5" stroke-linecap="round"/>`,
		num(valueX), barY+barHeight, num(valueX), barY+barHeight+markerLineHeight, colorMarker)
	b.WriteString("\n")
	fmt.Fprintf(&b,
		`  <text x="%s" y="%d" font-family="Helvetica,Arial,sans-serif" font-size="%d" font-weight="700" fill="%s" text-anchor="middle">%s</text>`,
		num(valueX), barY+barHeight+markerLineHeight+14, fontSizeValue, colorMarkerText, escape(valueLabel))
	b.WriteString("\n</svg>")
	return b.String()
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
