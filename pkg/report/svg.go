package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/matzehuels/densitool/pkg/design"
)

// SVG floorplan rendering. Each design block is drawn at its layout
// position with the fill shaded by density relative to the densest block in
// the set. Inverted corners are normalized for drawing only; the report
// data is untouched.

const (
	svgMaxDim = 800.0 // longest frame edge in pixels
	svgMargin = 10.0

	// Shading endpoints, sparse → dense.
	shadeLowR, shadeLowG, shadeLowB    = 0xE8, 0xF0, 0xF7
	shadeHighR, shadeHighG, shadeHighB = 0x1F, 0x4E, 0x79
)

// WriteSVG renders a floorplan of the given designs to w.
func WriteSVG(w io.Writer, designs []design.Design) error {
	var buf bytes.Buffer

	minX, minY, maxX, maxY := floorplanBounds(designs)
	extentX := maxX - minX
	extentY := maxY - minY

	scale := 1.0
	if m := max(extentX, extentY); m > 0 {
		scale = svgMaxDim / m
	}
	frameW := extentX*scale + 2*svgMargin
	frameH := extentY*scale + 2*svgMargin

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frameW, frameH, frameW, frameH)

	peak := peakDensity(designs)
	for _, d := range designs {
		renderBlock(&buf, d, minX, maxY, scale, peak)
	}

	buf.WriteString("</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func renderBlock(buf *bytes.Buffer, d design.Design, minX, maxY, scale, peak float64) {
	lx, ux := minMax(d.LX, d.UX)
	ly, uy := minMax(d.LY, d.UY)

	// Layout y grows up the die; SVG y grows down the page.
	x := (lx-minX)*scale + svgMargin
	y := (maxY-uy)*scale + svgMargin
	w := (ux - lx) * scale
	h := (uy - ly) * scale

	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#333" stroke-width="1">`+"\n",
		x, y, w, h, shade(d.Density, peak))
	fmt.Fprintf(buf, "    <title>%s: %.6f poly/mm² (%.2f mm², %d polys)</title>\n",
		escapeXML(d.Name), d.Density, d.AreaMM2, d.PolyCount)
	buf.WriteString("  </rect>\n")
}

// floorplanBounds returns the bounding box over all blocks with corners
// normalized. An empty set yields a zero box.
func floorplanBounds(designs []design.Design) (minX, minY, maxX, maxY float64) {
	for i, d := range designs {
		lx, ux := minMax(d.LX, d.UX)
		ly, uy := minMax(d.LY, d.UY)
		if i == 0 {
			minX, minY, maxX, maxY = lx, ly, ux, uy
			continue
		}
		minX = min(minX, lx)
		minY = min(minY, ly)
		maxX = max(maxX, ux)
		maxY = max(maxY, uy)
	}
	return minX, minY, maxX, maxY
}

// peakDensity returns the highest positive density, or 0 if there is none.
func peakDensity(designs []design.Design) float64 {
	peak := 0.0
	for _, d := range designs {
		if d.Density > peak {
			peak = d.Density
		}
	}
	return peak
}

// shade maps a density to a fill color on the linear ramp between the
// shading endpoints. Zero and negative densities render at the sparse end.
func shade(density, peak float64) string {
	t := 0.0
	if peak > 0 && density > 0 {
		t = density / peak
	}
	r := int(shadeLowR + t*(shadeHighR-shadeLowR))
	g := int(shadeLowG + t*(shadeHighG-shadeLowG))
	b := int(shadeLowB + t*(shadeHighB-shadeLowB))
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func minMax(a, b float64) (float64, float64) {
	if a <= b {
		return a, b
	}
	return b, a
}
